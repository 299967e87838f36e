package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue indicates a setting holds a value outside its domain.
	ErrInvalidValue = errors.New("config: invalid value")

	// ErrFileNotFound indicates the configuration file doesn't exist.
	ErrFileNotFound = errors.New("config: file not found")

	// ErrWatcherClosed is returned by Watcher methods after Close.
	ErrWatcherClosed = errors.New("config: watcher closed")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file that failed to parse, or "<reader>".
	Path string
	// Line and Column locate the error when the decoder reports them.
	Line   int
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying decoder error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a setting that failed validation.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "input.sequence_timeout".
	Path    string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
}

// Unwrap makes every ValidationError match ErrInvalidValue.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidValue
}
