package pressroom

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger returns the structured logger used across the server and CLI.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
		Prefix:          "pressroom",
	})
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *log.Logger {
	return log.New(io.Discard)
}
