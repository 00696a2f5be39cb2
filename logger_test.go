// Copyright 2026 The pxforge Authors
// SPDX-License-Identifier: BSD-3-Clause

package px

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultDiscards(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	// Must not panic, must not be enabled at any level.
	l.Info("ignored")
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	Logger().Info("registry built", "assets", 3)
	if !strings.Contains(buf.String(), "registry built") {
		t.Errorf("log output = %q, want message", buf.String())
	}

	SetLogger(nil)
	buf.Reset()
	Logger().Info("silent")
	if buf.Len() != 0 {
		t.Errorf("nil SetLogger still logged: %q", buf.String())
	}
}
