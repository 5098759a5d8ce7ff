package services

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrAuthRequired = errors.New("authentication required")
)

// ValidationError describes caller input that was rejected. It matches
// ErrValidation under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (err *ValidationError) Error() string {
	if err.Field == "" {
		return err.Message
	}
	return fmt.Sprintf("%s: %s", err.Field, err.Message)
}

func (err *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StoreError wraps a failure reported by the record store.
type StoreError struct {
	Op  string
	Err error
}

func (err *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", err.Op, err.Err)
}

func (err *StoreError) Unwrap() error {
	return err.Err
}

type AuthErrorKind string

const (
	AuthErrorInvalidInput       AuthErrorKind = "invalid_input"
	AuthErrorInvalidCredentials AuthErrorKind = "invalid_credentials"
	AuthErrorDuplicateAccount   AuthErrorKind = "duplicate_account"
	AuthErrorRateLimited        AuthErrorKind = "rate_limited"
	AuthErrorUnavailable        AuthErrorKind = "unavailable"
)

// AuthError is returned by identity operations. Message is safe to show to
// the person signing in.
type AuthError struct {
	Kind    AuthErrorKind
	Message string
	Err     error
}

func (err *AuthError) Error() string {
	if err.Err == nil {
		return err.Message
	}
	return fmt.Sprintf("%s: %v", err.Message, err.Err)
}

func (err *AuthError) Unwrap() error {
	return err.Err
}

func IsAuthErrorKind(err error, kind AuthErrorKind) bool {
	var authErr *AuthError
	return errors.As(err, &authErr) && authErr.Kind == kind
}
