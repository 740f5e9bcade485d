// Package config loads runtime configuration for the Trotamundos CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the blog API
//	-i int      online status check interval (seconds)
//	-d string   path of the local session database
//	-l string   log level
//
// # JSON schema
//
// Interval values use timex.Duration, so they can be either strings like
// "3s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000",
//	  "online_check_interval": "3s",
//	  "database_path": "trotamundos.db",
//	  "log_level": "info"
//	}
//
// Environment variables are not read; use the JSON file or flags.
package config
