package config

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigError wraps a failure while reading or decoding configuration.
type ConfigError struct {
	Op   string // bind_env, bind_flags, read, unmarshal
	Path string // config file in use, if any
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Op, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// FieldError is a validation failure tied to one dotted config key.
type FieldError interface {
	error
	Field() string
}

// ValidationError collects every FieldError found by Configuration.Validate.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	if len(msgs) == 1 {
		return "invalid configuration: " + msgs[0]
	}
	return fmt.Sprintf("invalid configuration (%d problems):\n  - %s", len(msgs), strings.Join(msgs, "\n  - "))
}

// Unwrap exposes the individual field errors to errors.As.
func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Errors))
	for i, fe := range e.Errors {
		out[i] = fe
	}
	return out
}

// HasError reports whether key failed validation.
func (e *ValidationError) HasError(key string) bool {
	for _, fe := range e.Errors {
		if fe.Field() == key {
			return true
		}
	}
	return false
}

// MissingKeyError reports a required key left empty.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s is required", e.Key)
}

func (e *MissingKeyError) Field() string { return e.Key }

// InvalidValueError reports a key whose value is out of range or malformed.
type InvalidValueError struct {
	Key     string
	Value   any
	Allowed string
}

func (e *InvalidValueError) Error() string {
	if e.Allowed == "" {
		return fmt.Sprintf("%s: invalid value %q", e.Key, fmt.Sprint(e.Value))
	}
	return fmt.Sprintf("%s: invalid value %q (want %s)", e.Key, fmt.Sprint(e.Value), e.Allowed)
}

func (e *InvalidValueError) Field() string { return e.Key }

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// IsConfigError checks if an error is a ConfigError.
func IsConfigError(err error) bool {
	var cErr *ConfigError
	return errors.As(err, &cErr)
}
