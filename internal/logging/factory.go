package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects the backend and output of a Logger built by New.
type Options struct {
	Backend string // "slog" (default) or "zap"
	Level   string // debug, info, warn, error
	Format  string // "text" (default) or "json"
	Output  io.Writer
}

// New builds a Logger from opts. An unknown level or backend is an error.
func New(opts Options) (Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(opts.Backend) {
	case "", "slog":
		return NewSlogLogger(slog.New(slogHandler(opts, level))), nil
	case "zap":
		return NewZapLogger(zap.New(zapCore(opts, level)).Sugar()), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func slogHandler(opts Options, level slog.Level) slog.Handler {
	ho := &slog.HandlerOptions{Level: level}
	if opts.Format == "json" {
		return slog.NewJSONHandler(opts.Output, ho)
	}
	return slog.NewTextHandler(opts.Output, ho)
}

func zapCore(opts Options, level slog.Level) zapcore.Core {
	encCfg := zap.NewDevelopmentEncoderConfig()
	var enc zapcore.Encoder
	if opts.Format == "json" {
		encCfg = zap.NewProductionEncoderConfig()
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	var zl zapcore.Level
	switch level {
	case slog.LevelDebug:
		zl = zapcore.DebugLevel
	case slog.LevelWarn:
		zl = zapcore.WarnLevel
	case slog.LevelError:
		zl = zapcore.ErrorLevel
	default:
		zl = zapcore.InfoLevel
	}

	return zapcore.NewCore(enc, zapcore.AddSync(opts.Output), zl)
}
