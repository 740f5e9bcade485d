package api

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnavailable means the server could not be reached or answered
	// with a transport-level failure (timeout, 5xx gateway errors).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the request carried no valid credential and
	// the refresh exchange (if attempted) did not produce one.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the credential was valid but the account lacks
	// the required capability.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the addressed resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is the sentinel wrapped by ValidationError so callers
	// can match the whole class with errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries the server's field-level validation messages,
// decoded from the DRF error body ({"field": ["msg", ...], "detail": "..."}).
type ValidationError struct {
	Detail string
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if msg := e.First(); msg != "" {
		return msg
	}
	return "validation failed"
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// First returns the most useful single message: the top-level detail if the
// server sent one, otherwise the first field message in field-name order.
func (e *ValidationError) First() string {
	if e.Detail != "" {
		return e.Detail
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if msgs := e.Fields[name]; len(msgs) > 0 {
			if name == "non_field_errors" {
				return msgs[0]
			}
			return fmt.Sprintf("%s: %s", name, strings.Join(msgs, "; "))
		}
	}
	return ""
}
