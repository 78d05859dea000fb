// Package apperr holds the error kinds the lookup path surfaces to callers.
package apperr

import (
	"errors"
	"fmt"
)

// ValidationError is a malformed caller input. Never retried.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return e.Field + ": " + e.Msg
}

// ConfigurationError means a required setting (API key etc.) is missing.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s is not set", e.Setting)
}

// UpstreamError is a failed or malformed block-explorer response.
type UpstreamError struct {
	Action     string
	StatusCode int
	Msg        string
	Err        error
}

func (e *UpstreamError) Error() string {
	s := "upstream " + e.Action
	if e.StatusCode != 0 {
		s += fmt.Sprintf(" http %d", e.StatusCode)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *UpstreamError) Unwrap() error { return e.Err }

func Validation(field, msg string) error { return &ValidationError{Field: field, Msg: msg} }

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsConfiguration(err error) bool {
	var c *ConfigurationError
	return errors.As(err, &c)
}

func IsUpstream(err error) bool {
	var u *UpstreamError
	return errors.As(err, &u)
}
