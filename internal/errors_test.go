package internal

import (
	"errors"
	"strings"
	"testing"
)

func TestStorageError(t *testing.T) {
	originalErr := errors.New("permission denied")
	err := &StorageError{
		Path: "/test/path",
		Op:   "open",
		Err:  originalErr,
	}

	errorMsg := err.Error()
	if !strings.Contains(errorMsg, "storage error") {
		t.Errorf("StorageError.Error() should contain 'storage error', got: %q", errorMsg)
	}
	if !strings.Contains(errorMsg, "/test/path") {
		t.Errorf("StorageError.Error() should contain path, got: %q", errorMsg)
	}
	if !errors.Is(err, originalErr) {
		t.Error("StorageError.Unwrap() should return original error")
	}
}

func TestNotFoundError(t *testing.T) {
	err := &NotFoundError{What: "Directory", Name: "nope"}
	if got, want := err.Error(), "Directory not found: nope"; got != want {
		t.Errorf("NotFoundError.Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}
}

func TestUsageError(t *testing.T) {
	tests := []struct {
		name string
		err  *UsageError
		want string
	}{
		{"usage only", &UsageError{Usage: "cat <file.md>"}, "Usage: cat <file.md>"},
		{"message only", &UsageError{Msg: "bad value"}, "bad value"},
		{"both", &UsageError{Usage: "size <1-26>", Msg: "Invalid size: x"}, "Invalid size: x\nUsage: size <1-26>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("UsageError.Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, ErrInvalidArgument) {
				t.Error("UsageError should match ErrInvalidArgument")
			}
		})
	}
}

func TestPersistenceError(t *testing.T) {
	cause := errors.New("disk full")
	err := &PersistenceError{Op: "settings", Err: cause}
	if !errors.Is(err, ErrPersistence) {
		t.Error("PersistenceError should match ErrPersistence")
	}
	if !errors.Is(err, cause) {
		t.Error("PersistenceError should unwrap to its cause")
	}
}

func TestHandlerFault(t *testing.T) {
	err := &HandlerFault{Command: "boom", Value: "kaput"}
	if err.Error() != "kaput" {
		t.Errorf("HandlerFault.Error() = %q, want %q", err.Error(), "kaput")
	}
	if !errors.Is(err, ErrHandlerFault) {
		t.Error("HandlerFault should match ErrHandlerFault")
	}
}

func TestExportError(t *testing.T) {
	originalErr := errors.New("write failed")
	err := &ExportError{Format: "jsonl", Path: "/out/x.jsonl", Err: originalErr}
	if !strings.Contains(err.Error(), "jsonl") {
		t.Errorf("ExportError.Error() should contain format, got: %q", err.Error())
	}
	if !errors.Is(err, originalErr) {
		t.Error("ExportError.Unwrap() should return original error")
	}
}
