package log

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process logger. Production writes plain console lines at
// info level; everything else gets colored debug output.
func New(environment string) zerolog.Logger {
	production := environment == "production"

	level := zerolog.DebugLevel
	if production {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	output := zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
		NoColor:    production,
	}

	return zerolog.New(output).With().
		Timestamp().
		Str("service", "portfolio-api").
		Str("env", environment).
		Logger()
}
