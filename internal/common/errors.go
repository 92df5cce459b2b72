// Package common provides shared utilities and types used across the engine.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrInvalidConfig indicates an analyzer was configured with
	// out-of-range or missing options. Configuration errors are raised
	// before any record is processed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoRecords indicates an operation that requires at least one
	// record was invoked on an empty batch.
	ErrNoRecords = errors.New("no records")
)

// ConfigError wraps ErrInvalidConfig with the offending option so callers
// can distinguish bad configuration from bad data.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrInvalidConfig, e.Option, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// NewConfigError creates a configuration error for a named option.
func NewConfigError(option, format string, args ...any) error {
	return &ConfigError{Option: option, Reason: fmt.Sprintf(format, args...)}
}
