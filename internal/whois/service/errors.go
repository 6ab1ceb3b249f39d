package service

import (
	"errors"
	"fmt"
)

// UnknownErrorMessage replaces failures that carry no message.
const UnknownErrorMessage = "Unknown error occurred"

// ErrorCategory defines the normalized lookup failure taxonomy.
type ErrorCategory string

const (
	// ErrorConfiguration means no WHOIS server is configured for the TLD.
	// It is permanent until the TLD table changes.
	ErrorConfiguration ErrorCategory = "configuration"

	// ErrorTransport covers network, timeout and protocol failures from the
	// WHOIS or RDAP clients.
	ErrorTransport ErrorCategory = "transport"

	// ErrorParse means the parser rejected the payload.
	ErrorParse ErrorCategory = "parse"

	// ErrorUnknown covers panics and errors without a message.
	ErrorUnknown ErrorCategory = "unknown"
)

// LookupError wraps lookup failures with a category.
type LookupError struct {
	Category   ErrorCategory
	Domain     string
	Message    string
	Underlying error
	Retryable  bool
}

// Error returns the message surfaced in LookupResult.Error: the explicit
// message if set, else the underlying error's text.
func (e *LookupError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Underlying != nil && e.Underlying.Error() != "" {
		return e.Underlying.Error()
	}
	return UnknownErrorMessage
}

func (e *LookupError) Unwrap() error {
	return e.Underlying
}

// NewLookupError creates a categorized lookup error. Transport failures are
// the only ones worth retrying.
func NewLookupError(category ErrorCategory, domain, message string, underlying error) *LookupError {
	return &LookupError{
		Category:   category,
		Domain:     domain,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == ErrorTransport,
	}
}

func configurationError(domain, tld string) *LookupError {
	return NewLookupError(ErrorConfiguration, domain,
		fmt.Sprintf("no whois server configured for tld %q; add it to the tld servers file", tld), nil)
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Retryable
	}
	return false
}

// CategoryOf extracts the error category from an error.
func CategoryOf(err error) ErrorCategory {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Category
	}
	return ErrorUnknown
}

// Message returns the text reported to callers for err.
func Message(err error) string {
	if err == nil || err.Error() == "" {
		return UnknownErrorMessage
	}
	return err.Error()
}

// ErrPanic marks a recovered panic from a collaborator.
var ErrPanic = errors.New("panic in lookup collaborator")

// guard runs fn and converts a panic into an ErrorUnknown LookupError.
func guard(domain string, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		msg := UnknownErrorMessage
		underlying := ErrPanic
		switch v := r.(type) {
		case error:
			underlying = fmt.Errorf("%w: %w", ErrPanic, v)
			if v.Error() != "" {
				msg = v.Error()
			}
		case string:
			if v != "" {
				msg = v
			}
		}
		err = NewLookupError(ErrorUnknown, domain, msg, underlying)
	}()
	return fn()
}
