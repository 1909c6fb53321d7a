package main

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// setupLogger configures the global zerolog logger for the CLI and a
// matching slog handler for the ledger library.
func setupLogger(cfg *Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.WarnLevel
	}
	zerolog.SetGlobalLevel(level)

	if strings.ToLower(cfg.LogFormat) != "json" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(level),
	})))
}

func slogLevel(level zerolog.Level) slog.Level {
	switch {
	case level <= zerolog.DebugLevel:
		return slog.LevelDebug
	case level == zerolog.InfoLevel:
		return slog.LevelInfo
	case level == zerolog.WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
