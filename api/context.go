package api

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type keyType string

const loggerKey keyType = "logger"

// ctxWithLogger stores a request-scoped logger in the context
func ctxWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// ctxGetLogger returns the request-scoped logger, falling back to the global
// one
func ctxGetLogger(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return log.Logger
}
