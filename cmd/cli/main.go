package main

import (
	"context"
	"log"
	"os"

	"trotamundos/internal/buildinfo"
	"trotamundos/internal/cli"
	"trotamundos/internal/config"
	"trotamundos/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(cfg.LogLevel)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
