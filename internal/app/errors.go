// Package app drives the terminal event loop.
package app

import (
	"errors"
	"fmt"
)

// Loop errors.
var (
	// ErrAlreadyRunning indicates Run was called on a loop that is not idle.
	ErrAlreadyRunning = errors.New("event loop already running")

	// ErrNotRunning indicates the loop is shutting down or stopped.
	ErrNotRunning = errors.New("event loop not running")

	// ErrQueueFull indicates the command queue is full.
	ErrQueueFull = errors.New("event loop command queue full")

	// ErrSourceClosed indicates the terminal stopped producing events.
	ErrSourceClosed = errors.New("terminal event source closed")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op  string // Operation name (e.g., "init", "input")
	Err error  // Underlying error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return e.Op
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
