package errors

import (
	"errors"
	"fmt"
)

// Common error types for the insights server
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")

	// Token errors
	ErrTokenExpired   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
	ErrUnknownSubject = errors.New("unknown token subject")

	// Dataset errors
	ErrTableNotFound  = errors.New("table not found")
	ErrColumnNotFound = errors.New("column not found")

	// Model errors
	ErrModelNotFitted = errors.New("model not fitted")
	ErrNoTrainingData = errors.New("no training data")

	// General errors
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
