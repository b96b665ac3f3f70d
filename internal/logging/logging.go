// Package logging provides the application logger: a slog facade that fans
// records out to the console and to a rotating log file in the config
// directory.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is a minimal structured logger facade over slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type slogLogger struct{ l *slog.Logger }

func (s *slogLogger) Debug(msg string, args ...any) { s.l.Debug(msg, args...) }
func (s *slogLogger) Info(msg string, args ...any)  { s.l.Info(msg, args...) }
func (s *slogLogger) Warn(msg string, args ...any)  { s.l.Warn(msg, args...) }
func (s *slogLogger) Error(msg string, args ...any) { s.l.Error(msg, args...) }

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &slogLogger{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// consoleHandler writes bare messages to stderr without timestamps or level
// prefixes; debug records only pass in debug mode.
type consoleHandler struct {
	writer    io.Writer
	debugMode bool
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	if level == slog.LevelDebug {
		return h.debugMode
	}
	return level >= slog.LevelWarn
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	_, err := fmt.Fprintln(h.writer, record.Message)
	return err
}

func (h *consoleHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }
func (h *consoleHandler) WithGroup(_ string) slog.Handler      { return h }

// multiHandler fans out log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, record.Level) {
			continue
		}
		if err := handler.Handle(ctx, record); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		handlers[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// newLogFile creates a rotating log writer with configuration from
// environment variables.
func newLogFile(path string) *lumberjack.Logger {
	config := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    1,  // megabytes
		MaxBackups: 2,
		MaxAge:     30, // days
	}
	if maxSize, err := strconv.Atoi(os.Getenv("BUT_LOG_MAX_SIZE")); err == nil && maxSize > 0 {
		config.MaxSize = maxSize
	}
	if maxBackups, err := strconv.Atoi(os.Getenv("BUT_LOG_MAX_BACKUPS")); err == nil && maxBackups >= 0 {
		config.MaxBackups = maxBackups
	}
	if maxAge, err := strconv.Atoi(os.Getenv("BUT_LOG_MAX_AGE")); err == nil && maxAge > 0 {
		config.MaxAge = maxAge
	}
	return config
}

// New builds the application logger. Console output goes to stderr; when
// logFilePath is non-empty, full structured records additionally go to a
// rotating file.
func New(debug bool, logFilePath string) Logger {
	handlers := []slog.Handler{
		&consoleHandler{writer: os.Stderr, debugMode: debug},
	}
	if logFilePath != "" {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		fileHandler := slog.NewJSONHandler(newLogFile(logFilePath), &slog.HandlerOptions{Level: level})
		handlers = append(handlers, fileHandler)
	}
	return &slogLogger{l: slog.New(&multiHandler{handlers: handlers})}
}
