package logging

import (
	"errors"
	"log/slog"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"WARN", slog.LevelWarn},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := New(tt.level)
			if logger == nil {
				t.Fatal("New returned nil")
			}
			if !logger.Enabled(nil, tt.want) {
				t.Errorf("New(%q) should log at %v", tt.level, tt.want)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(nil, tt.want-4) {
				t.Errorf("New(%q) should not log below %v", tt.level, tt.want)
			}
		})
	}
}

func TestWithOperation(t *testing.T) {
	logger := slog.Default()
	result := WithOperation(logger, "sync_pass")
	if result == nil {
		t.Error("WithOperation returned nil")
	}
}

func TestWithService(t *testing.T) {
	logger := slog.Default()
	result := WithService(logger, "calendar")
	if result == nil {
		t.Error("WithService returned nil")
	}
}

func TestOperationAttr(t *testing.T) {
	attr := Operation("archive_task")
	if attr.Key != KeyOperation {
		t.Errorf("Operation key = %q, want %q", attr.Key, KeyOperation)
	}
	if attr.Value.String() != "archive_task" {
		t.Errorf("Operation value = %q, want %q", attr.Value.String(), "archive_task")
	}
}

func TestServiceAttr(t *testing.T) {
	attr := Service("notion")
	if attr.Key != KeyService {
		t.Errorf("Service key = %q, want %q", attr.Key, KeyService)
	}
	if attr.Value.String() != "notion" {
		t.Errorf("Service value = %q, want %q", attr.Value.String(), "notion")
	}
}

func TestTaskAttr(t *testing.T) {
	attr := Task("a1b2c3")
	if attr.Key != KeyTask {
		t.Errorf("Task key = %q, want %q", attr.Key, KeyTask)
	}
	if attr.Value.String() != "a1b2c3" {
		t.Errorf("Task value = %q, want %q", attr.Value.String(), "a1b2c3")
	}
}

func TestEventAttr(t *testing.T) {
	attr := Event("a1b2c3")
	if attr.Key != KeyEvent {
		t.Errorf("Event key = %q, want %q", attr.Key, KeyEvent)
	}
	if attr.Value.String() != "a1b2c3" {
		t.Errorf("Event value = %q, want %q", attr.Value.String(), "a1b2c3")
	}
}

func TestStatusAttr(t *testing.T) {
	attr := Status(StatusSuccess)
	if attr.Key != KeyStatus {
		t.Errorf("Status key = %q, want %q", attr.Key, KeyStatus)
	}
	if attr.Value.String() != StatusSuccess {
		t.Errorf("Status value = %q, want %q", attr.Value.String(), StatusSuccess)
	}
}

func TestCountAttr(t *testing.T) {
	attr := Count(42)
	if attr.Key != KeyCount {
		t.Errorf("Count key = %q, want %q", attr.Key, KeyCount)
	}
	if attr.Value.Int64() != 42 {
		t.Errorf("Count value = %d, want 42", attr.Value.Int64())
	}
}

func TestErr(t *testing.T) {
	// Test with error
	err := errors.New("test error")
	attr := Err(err)
	if attr.Key != KeyError {
		t.Errorf("Err key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "test error" {
		t.Errorf("Err value = %q, want %q", attr.Value.String(), "test error")
	}

	// Test with nil - should return an empty group that slog will omit
	attr = Err(nil)
	// Empty Group has empty key
	if attr.Key != "" {
		t.Errorf("Err(nil) key = %q, want empty string (empty group)", attr.Key)
	}
}
