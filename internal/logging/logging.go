package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/tmaxmax/bffgen/internal/config"
)

// New returns a console logger writing to w.
func New(w io.Writer, cfg config.LogConfig) (zerolog.Logger, error) {
	level, ok := ParseLevel(cfg.Level)
	if !ok {
		return zerolog.Nop(), fmt.Errorf("logging: unknown level %q", cfg.Level)
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}

	if !cfg.Timestamp {
		output.PartsExclude = []string{zerolog.TimestampFieldName}
	}

	logger := zerolog.New(output).Level(level)
	if cfg.Timestamp {
		logger = logger.With().Timestamp().Logger()
	}

	return logger, nil
}

func ParseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "info":
		return zerolog.InfoLevel, true
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.NoLevel, false
	}
}
