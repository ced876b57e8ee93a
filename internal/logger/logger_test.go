package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		format string
	}{
		{"debug console", "debug", "console"},
		{"info console", "info", "console"},
		{"warn console", "warn", "console"},
		{"error console", "error", "console"},
		{"json format", "info", "json"},
		{"uppercase level", "DEBUG", "console"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Setup(tt.level, tt.format)
			if Log == nil {
				t.Error("expected Log to be initialized")
			}
		})
	}
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level  string
		expect zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"WARN", zerolog.WarnLevel},
		{"bogus", zerolog.InfoLevel}, // fallback
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run("level "+tt.level, func(t *testing.T) {
			Setup(tt.level, "console")
			if got := zerolog.GlobalLevel(); got != tt.expect {
				t.Errorf("level %q: expected %v, got %v", tt.level, tt.expect, got)
			}
		})
	}
}

func TestLoggerMethods(t *testing.T) {
	Setup("debug", "console")

	// None of these should panic.
	Log.Debug("debug message", "file", "i4_1.npy")
	Log.Info("info message", "dtype", "i4", "elems", 8)
	Log.Warn("warn message")
	Log.Error("error message", "error", "boom")
}

func TestAddFieldsOddArgs(t *testing.T) {
	Setup("info", "console")

	// Trailing key without a value is dropped.
	Log.Info("odd args", "key1", "value1", "orphan")
}

func TestAddFieldsNonStringKey(t *testing.T) {
	Setup("info", "console")

	// Non-string keys are stringified.
	Log.Info("non-string key", 42, "value")
}

func TestAddFieldsNilValue(t *testing.T) {
	Setup("info", "console")
	Log.Info("nil value", "key", nil)
}
