package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TASKLIST_TEST_SET", "value")

	if got := getEnv("TASKLIST_TEST_SET", "default"); got != "value" {
		t.Errorf("expected %q, got %q", "value", got)
	}
	if got := getEnv("TASKLIST_TEST_UNSET", "default"); got != "default" {
		t.Errorf("expected %q, got %q", "default", got)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level    string
		enabled  slog.Level
		disabled slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"WARN", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := newLogger("", tt.level)
			ctx := context.Background()
			if !logger.Enabled(ctx, tt.enabled) {
				t.Errorf("expected %s to be enabled", tt.enabled)
			}
			if logger.Enabled(ctx, tt.disabled) {
				t.Errorf("expected %s to be disabled", tt.disabled)
			}
		})
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.log")

	logger := newLogger(path, "info")
	if !logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info to be enabled")
	}
	logger.Info("hello")
}
