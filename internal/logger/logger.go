// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger provides a thin wrapper around zerolog.Logger that adds
// convenience constructors and context-aware helpers used throughout the
// atere research tool.
//
// The Logger type embeds zerolog.Logger so all standard zerolog methods
// (Debug, Info, Warn, Error, Fatal, etc.) are available directly on *Logger.
// Loggers are constructed explicitly in main and injected into components;
// no package touches logging configuration at import time.
package logger

import (
	"context"
	"io"
	"os"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger.
//
// Loggers derived through [Logger.GetChildLogger] and [Logger.WithComponent]
// share the level of their parent, so [Logger.SetLevel] on any of them
// applies to all.
type Logger struct {
	zerolog.Logger

	level *sharedLevel
}

// sharedLevel is a zerolog hook that drops events below a level which can
// change after the loggers carrying it were created.
type sharedLevel struct {
	level atomic.Int32
}

func newSharedLevel(level zerolog.Level) *sharedLevel {
	s := &sharedLevel{}
	s.set(level)
	return s
}

func (s *sharedLevel) set(level zerolog.Level) {
	s.level.Store(int32(level))
}

func (s *sharedLevel) get() zerolog.Level {
	return zerolog.Level(s.level.Load())
}

func (s *sharedLevel) Run(e *zerolog.Event, level zerolog.Level, _ string) {
	if level != zerolog.NoLevel && level < s.get() {
		e.Discard()
	}
}

// NewLogger constructs a *Logger for the given role label
// (e.g. "atere", "config").
//
// Every entry carries:
//   - a "role" field set to role;
//   - a timestamp;
//   - a "func" caller field holding the fully-qualified function name.
//
// Output is written to os.Stdout in JSON format at Debug level until
// [Logger.SetLevel] narrows it.
func NewLogger(role string) *Logger {
	return newLogger(os.Stdout, role)
}

func newLogger(w io.Writer, role string) *Logger {
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	level := newSharedLevel(zerolog.DebugLevel)
	logger := zerolog.New(w).
		Level(zerolog.TraceLevel).
		Hook(level).
		With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{Logger: logger, level: level}
}

// Nop returns a *Logger that discards all log output.
// It is intended for use in tests.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// GetChildLogger returns a new *Logger that inherits all fields of the
// receiver.
func (l *Logger) GetChildLogger() *Logger {
	return &Logger{Logger: l.With().Logger(), level: l.level}
}

// WithComponent returns a child logger tagged with a "component" field.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.With().Str("component", name).Logger(), level: l.level}
}

// SetLevel sets the level of the logger and of every logger sharing its
// level. Both zerolog names ("debug", "warn") and the upper-case names used
// in config files ("DEBUG", "WARNING", "CRITICAL") are accepted. Unknown
// names leave the level unchanged and return false.
//
// Loggers without a shared level ([Nop], [FromContext]) only change
// themselves.
func (l *Logger) SetLevel(name string) bool {
	level, ok := ParseLevel(name)
	if !ok {
		return false
	}

	if l.level == nil {
		l.Logger = l.Logger.Level(level)
		return true
	}

	l.level.set(level)
	return true
}

// ParseLevel maps a textual level name onto a zerolog.Level.
func ParseLevel(name string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "warning":
		return zerolog.WarnLevel, true
	case "critical":
		return zerolog.FatalLevel, true
	case "":
		return zerolog.NoLevel, false
	}

	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zerolog.NoLevel, false
	}

	return level, true
}

// FromContext extracts the zerolog.Logger stored in ctx by zerolog's log.Ctx
// helper and returns it as a *Logger.
//
// If no logger has been attached to ctx, zerolog returns its default logger,
// so this function never returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{Logger: *log.Ctx(ctx)}
}
