// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package vpdchart

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/vpdchart/font"
	"github.com/gogpu/vpdchart/raster"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. SetLogger may run concurrently with
// logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// Logger returns the current logger.
func Logger() *slog.Logger { return loggerPtr.Load() }

// SetLogger configures the logger for vpdchart and all its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by vpdchart:
//   - [slog.LevelDebug]: cache hits, backend probing, skipped text
//   - [slog.LevelInfo]: selected backend, registered fonts, rendered charts
//   - [slog.LevelWarn]: GPU fallback, default font failure
//
// Example:
//
//	vpdchart.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	raster.SetLogger(l)
	font.SetLogger(l)
}
