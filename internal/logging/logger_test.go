package logging_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inkwell/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive", "DEBUG", log.DebugLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			if got := logging.New(testCase.level).GetLevel(); got != testCase.expected {
				t.Errorf("expected level %v, got %v", testCase.expected, got)
			}
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "warn")

	logger.Info("hidden")
	logger.Warn("parse degraded", logging.FieldRevision, 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info entry written at warn level: %q", out)
	}
	if !strings.Contains(out, "parse degraded") || !strings.Contains(out, "revision=7") {
		t.Errorf("warn entry missing: %q", out)
	}
}

func TestSetLevelAndDefault(t *testing.T) {
	// Not parallel: modifies the package default.
	original := logging.Default()
	defer logging.SetDefault(original)

	fresh := logging.New("info")
	logging.SetDefault(fresh)
	if logging.Default() != fresh {
		t.Fatal("SetDefault did not change the default logger")
	}

	logging.SetLevel("debug")
	if fresh.GetLevel() != log.DebugLevel {
		t.Error("SetLevel to debug failed")
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	ctx := logging.WithLogger(context.Background(), logger)

	if logging.FromContext(ctx) != logger {
		t.Error("FromContext did not return the attached logger")
	}
	if logging.FromContext(context.Background()) == nil {
		t.Error("FromContext without a logger should fall back to the default")
	}
}
