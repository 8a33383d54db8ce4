package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"slackr/internal/schedule"
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// outputError reports a fatal error on stderr, as JSON unless --human
// is set.
func outputError(err error) {
	if humanOutput {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		return
	}
	enc := json.NewEncoder(os.Stderr)
	enc.SetIndent("", "  ")
	_ = enc.Encode(ErrorResponse{Error: err.Error()})
}

// formatDate renders a date, tolerating the zero value (a batch entry
// that failed before its date resolved).
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(schedule.DateLayout)
}

// formatInstant renders a full timestamp for user-facing output.
func formatInstant(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(time.RFC3339)
}
