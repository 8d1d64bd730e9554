package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. The scheduler and the API server pass
// different service names so their output can be told apart.
func New(env, service string) zerolog.Logger {
	log := zerolog.New(os.Stderr).With().Timestamp().Str("service", service).Logger()
	if env == "development" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log
}
