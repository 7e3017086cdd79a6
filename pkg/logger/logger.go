package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger is the logging surface used across the module
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)

	With(args ...any) Logger

	// SlogLogger exposes the underlying logger for libraries that want one
	SlogLogger() *slog.Logger
}

type Config struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"` // text or json
	Output   string `yaml:"output"` // stdout, stderr or file
	FilePath string `yaml:"file_path"`
}

type appLogger struct {
	logger *slog.Logger
}

// New builds a logger from config. Unknown values fall back to info/text/stderr.
func New(cfg Config) Logger {
	return NewWithWriter(cfg, writerFor(cfg))
}

// NewWithWriter builds a logger that writes to w regardless of cfg.Output
func NewWithWriter(cfg Config, w io.Writer) Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return &appLogger{logger: slog.New(handler)}
}

// Nop discards everything
func Nop() Logger {
	return &appLogger{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// ParseLevel maps debug, info, warn and error to slog levels
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func writerFor(cfg Config) io.Writer {
	switch cfg.Output {
	case "stdout":
		return os.Stdout
	case "file":
		if cfg.FilePath == "" {
			return os.Stderr
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
			return os.Stderr
		}
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			return os.Stderr
		}
		return f
	default:
		return os.Stderr
	}
}

func (l *appLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *appLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *appLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *appLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *appLogger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *appLogger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *appLogger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *appLogger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *appLogger) With(args ...any) Logger {
	return &appLogger{logger: l.logger.With(args...)}
}

func (l *appLogger) SlogLogger() *slog.Logger {
	return l.logger
}
