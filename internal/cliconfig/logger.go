package cliconfig

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger builds the CLI's console logger at the configured level. Unknown
// levels fall back to info.
func Logger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(output).With().Timestamp().Logger().Level(lvl)
}
