package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/lmittmann/tint"
)

type Config struct {
	Level     string
	Format    string
	AddSource bool
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.Required, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.Format, validation.Required, validation.In("json", "text")),
	)
}

func (c *Config) slogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type Logger struct {
	*slog.Logger
}

func New(cfg *Config) (*Logger, error) {
	return NewWithWriter(cfg, os.Stdout)
}

// NewWithWriter builds a logger writing to w.
func NewWithWriter(cfg *Config, w io.Writer) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Logger{slog.New(createHandler(cfg, w))}, nil
}

// Nop discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func createHandler(cfg *Config, w io.Writer) slog.Handler {
	if cfg.Format == "text" {
		return tint.NewHandler(w, &tint.Options{
			Level:      cfg.slogLevel(),
			AddSource:  cfg.AddSource,
			TimeFormat: "15:04:05",
		})
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     cfg.slogLevel(),
		AddSource: cfg.AddSource,
	})
}

func (l *Logger) Component(name string) *Logger {
	return &Logger{l.Logger.With("component", name)}
}

// Err returns the error as a structured attribute.
//
//	log.Error("failed to do something", logger.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}
