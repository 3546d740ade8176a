package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// newLogger builds the program logger: human-readable lines on stderr at
// level and, when path is set, JSON lines in a rotated file at level or
// info, whichever is lower. The returned func closes the file.
func newLogger(stderr io.Writer, level, path string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	consoleLevel, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	console := charmlog.NewWithOptions(stderr, charmlog.Options{
		Level:           consoleLevel,
		Prefix:          "medcrawl",
		ReportTimestamp: true,
	})
	if path == "" {
		return slog.New(console), func() {}, nil
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	jsonHandler := slog.NewJSONHandler(file, &slog.HandlerOptions{Level: min(lvl, slog.LevelInfo)})
	logger := slog.New(teeHandler{console, jsonHandler})
	return logger, func() { _ = file.Close() }, nil
}

// teeHandler sends each record to every handler that accepts its level.
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
