package logging_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/efoncier/survey-lab/pkg/logging"
)

func TestLevel_Validate(t *testing.T) {
	for _, level := range []logging.Level{
		logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError,
	} {
		if err := level.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", level, err)
		}
	}

	if err := logging.Level("verbose").Validate(); err == nil {
		t.Error("Validate(verbose) should fail")
	}
}

func TestLevel_ToSlogLevel(t *testing.T) {
	tests := []struct {
		level logging.Level
		want  slog.Level
	}{
		{logging.LevelDebug, slog.LevelDebug},
		{logging.LevelInfo, slog.LevelInfo},
		{logging.LevelWarn, slog.LevelWarn},
		{logging.LevelError, slog.LevelError},
		{logging.Level("unknown"), slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := tt.level.ToSlogLevel(); got != tt.want {
			t.Errorf("ToSlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestFormat_Validate(t *testing.T) {
	if err := logging.FormatText.Validate(); err != nil {
		t.Errorf("Validate(text) = %v, want nil", err)
	}
	if err := logging.FormatJSON.Validate(); err != nil {
		t.Errorf("Validate(json) = %v, want nil", err)
	}
	if err := logging.Format("xml").Validate(); err == nil {
		t.Error("Validate(xml) should fail")
	}
}

func TestConfig_Finalize_Defaults(t *testing.T) {
	cfg := logging.Config{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	if cfg.Level != logging.LevelInfo {
		t.Errorf("Level = %q, want %q", cfg.Level, logging.LevelInfo)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want %q", cfg.Format, logging.FormatText)
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	cfg := logging.Config{Level: "verbose"}
	if err := cfg.Finalize(); err == nil {
		t.Error("Finalize() with invalid level should fail")
	}
}

func TestNew(t *testing.T) {
	cfg := logging.Config{Level: logging.LevelDebug, Format: logging.FormatJSON}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() failed: %v", err)
	}

	logger := logging.New(&cfg)
	if logger == nil {
		t.Fatal("New() returned nil")
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level not enabled")
	}
}
