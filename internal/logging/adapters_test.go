// Recommendations - Product Recommendation REST API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/recommendations

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestSlogHandler_WritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	slogger.Warn("service restarted", "service", "http-server", "attempt", 3)

	out := buf.String()
	for _, want := range []string{`"level":"warn"`, `"service":"http-server"`, `"attempt":3`, "service restarted"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestSlogHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf))).
		With("tree", "root").
		WithGroup("svc")

	slogger.Info("event", "name", "store-monitor", slog.Group("backoff", "seconds", 15))

	out := buf.String()
	for _, want := range []string{`"tree":"root"`, `"svc.name":"store-monitor"`, `"svc.backoff.seconds":15`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	h := NewSlogHandlerWithLogger(NewTestLogger(&bytes.Buffer{}).Level(zerologLevel(slog.LevelWarn)))

	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn logger")
	}
}

func TestGormLogger_Trace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		elapsed time.Duration
		err     error
		want    string
	}{
		{"error logged", gormlogger.Warn, 0, errors.New("disk full"), "Query failed"},
		{"record not found ignored", gormlogger.Warn, 0, gorm.ErrRecordNotFound, ""},
		{"slow query", gormlogger.Warn, 2 * time.Second, nil, "Slow query"},
		{"fast query silent at warn", gormlogger.Warn, 0, nil, ""},
		{"silent level", gormlogger.Silent, 0, errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewGormLogger().WithLogger(NewTestLogger(&buf)).LogMode(tt.level)

			l.Trace(context.Background(), time.Now().Add(-tt.elapsed), func() (string, int64) {
				return "SELECT 1", 1
			}, tt.err)

			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("expected no output, got %s", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) || !strings.Contains(out, "SELECT 1") {
				t.Errorf("output %q missing %q", out, tt.want)
			}
		})
	}
}

func TestGormLogger_RequestID(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger().WithLogger(NewTestLogger(&buf))

	ctx := ContextWithRequestID(context.Background(), "abc")
	l.Warn(ctx, "pool %s", "exhausted")

	out := buf.String()
	if !strings.Contains(out, `"request_id":"abc"`) || !strings.Contains(out, "pool exhausted") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestGormLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level gormlogger.LogLevel
		call  func(l gormlogger.Interface, ctx context.Context)
		want  string
	}{
		{"info at info", gormlogger.Info, func(l gormlogger.Interface, ctx context.Context) { l.Info(ctx, "migrated %d tables", 1) }, `"level":"info"`},
		{"info at warn", gormlogger.Warn, func(l gormlogger.Interface, ctx context.Context) { l.Info(ctx, "migrated %d tables", 1) }, ""},
		{"error at error", gormlogger.Error, func(l gormlogger.Interface, ctx context.Context) { l.Error(ctx, "dial %s", "failed") }, `"level":"error"`},
		{"error when silent", gormlogger.Silent, func(l gormlogger.Interface, ctx context.Context) { l.Error(ctx, "dial %s", "failed") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewGormLogger().WithLogger(NewTestLogger(&buf)).LogMode(tt.level)

			tt.call(l, ContextWithRequestID(context.Background(), "req-1"))

			out := buf.String()
			if tt.want == "" {
				if out != "" {
					t.Errorf("expected no output, got %s", out)
				}
				return
			}
			if !strings.Contains(out, tt.want) || !strings.Contains(out, `"request_id":"req-1"`) {
				t.Errorf("output %q missing %q", out, tt.want)
			}
		})
	}
}
