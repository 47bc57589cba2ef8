package observability

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the process-wide logger. Dev environments get the
// human-friendly console writer; everything else emits JSON lines.
func NewLogger(env string) zerolog.Logger {
	var out zerolog.Logger
	switch env {
	case "dev", "development":
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	default:
		out = zerolog.New(os.Stdout)
	}
	return out.With().Timestamp().Str("app", "stayhunt").Logger()
}
