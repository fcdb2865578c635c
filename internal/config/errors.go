package config

import (
	"errors"
	"fmt"
)

const (
	// ErrCodeInvalid: the config file could not be parsed.
	ErrCodeInvalid = "config_invalid"
	// ErrCodeValue: a parameter has a value of the wrong type or range.
	ErrCodeValue = "config_value"
)

// Error is a structured configuration error.
type Error struct {
	Code string
	Path string
	Key  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Code == ErrCodeInvalid:
		return fmt.Sprintf("%s: failure to parse config file %q: %v", e.Code, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %q in %q: %v", e.Code, e.Key, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s: %q: %v", e.Code, e.Key, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Code extracts the error code, or "" if err is not a *Error.
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Warning is a non-fatal configuration finding.
type Warning struct {
	Path    string
	Key     string
	Message string
}

func (w Warning) String() string {
	if w.Key != "" {
		return fmt.Sprintf("key %q from config file %q %s", w.Key, w.Path, w.Message)
	}
	return fmt.Sprintf("config file %q %s", w.Path, w.Message)
}
