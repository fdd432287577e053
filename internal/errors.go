package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a path or name that does not exist in the tree.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument reports a malformed command argument.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrHandlerFault reports a handler that panicked.
	ErrHandlerFault = errors.New("handler fault")
	// ErrPersistence reports a settings or history write that did not land.
	ErrPersistence = errors.New("persistence failure")
	// ErrBusy is returned by Submit while a handler is running.
	ErrBusy = errors.New("session busy")
	// ErrSessionClosed is returned once the session has been closed.
	ErrSessionClosed = errors.New("session closed")
)

// NotFoundError names the thing that was looked up
type NotFoundError struct {
	What string // "Directory", "File", "Command"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UsageError is an invalid argument reported together with the usage line
type UsageError struct {
	Usage string
	Msg   string
}

func (e *UsageError) Error() string {
	switch {
	case e.Msg == "":
		return "Usage: " + e.Usage
	case e.Usage == "":
		return e.Msg
	default:
		return fmt.Sprintf("%s\nUsage: %s", e.Msg, e.Usage)
	}
}

func (e *UsageError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// HandlerFault wraps a value recovered from a panicking handler
type HandlerFault struct {
	Command string
	Value   interface{}
}

func (e *HandlerFault) Error() string {
	return fmt.Sprintf("%v", e.Value)
}

func (e *HandlerFault) Is(target error) bool {
	return target == ErrHandlerFault
}

// PersistenceError represents a failed write to the state store
type PersistenceError struct {
	Op  string // "settings", "history", "file"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error [%s]: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// StorageError represents errors accessing storage files
type StorageError struct {
	Path string
	Op   string // "open", "read", "parse"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ManifestError represents a manifest that could not be turned into a tree
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("manifest error: %v", e.Err)
	}
	return fmt.Sprintf("manifest error %s: %v", e.Path, e.Err)
}

func (e *ManifestError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
