// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors
var (
	// Data errors
	ErrInvalidSymbol = &Error{Code: "INVALID_SYMBOL", Message: "invalid symbol"}
	ErrNoData        = &Error{Code: "NO_DATA", Message: "no data returned from provider"}

	// Fetch errors
	ErrFetchFailed     = &Error{Code: "FETCH_FAILED", Message: "fetch failed"}
	ErrProviderFailed  = &Error{Code: "PROVIDER_FAILED", Message: "provider request failed"}
	ErrProviderUnknown = &Error{Code: "PROVIDER_UNKNOWN", Message: "provider not registered"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)

// FetchError reports a failed point-in-time quote fetch for a ticker.
type FetchError struct {
	Ticker string
	Cause  error
}

func (e *FetchError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("failed to fetch stock quote for %s: unknown error", e.Ticker)
	}
	return fmt.Sprintf("failed to fetch stock quote for %s: %v", e.Ticker, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// Is matches ErrFetchFailed so callers can test the category without the type.
func (e *FetchError) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return t.Code == ErrFetchFailed.Code
	}
	return false
}
