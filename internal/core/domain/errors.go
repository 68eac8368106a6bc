package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain error with a stable error code.
//
// Message is the client-facing text; the RESP layer sends it as
// "-ERR <Message>". Code is used for logs and metric labels.
type DomainError struct {
	Code    string // Error code (e.g., "KV-CMD-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support; errors with the same code match.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Command Errors (CMD)
// ============================================================================

var (
	// ErrUnknownCommand is returned for command names outside the supported set.
	ErrUnknownCommand = NewDomainError("KV-CMD-4040", "unknown command")

	// ErrUnknownSubcommand is returned for CONFIG subcommands other than GET and SET.
	ErrUnknownSubcommand = NewDomainError("KV-CMD-4041", "unknown subcommand")
)

// ============================================================================
// Argument Errors (ARG)
// ============================================================================

var (
	// ErrWrongArity indicates the command received the wrong number of arguments.
	ErrWrongArity = NewDomainError("KV-ARG-4001", "wrong number of arguments")

	// ErrSyntax indicates an unrecognized option.
	ErrSyntax = NewDomainError("KV-ARG-4002", "syntax error")

	// ErrNotInteger indicates a numeric argument could not be parsed.
	ErrNotInteger = NewDomainError("KV-ARG-4003", "value is not an integer or out of range")

	// ErrInvalidExpire indicates a non-positive expiration.
	ErrInvalidExpire = NewDomainError("KV-ARG-4004", "invalid expire time in 'set' command")
)

// WrongArity returns ErrWrongArity with the Redis-style message for cmd.
func WrongArity(cmd string) *DomainError {
	return &DomainError{
		Code:    ErrWrongArity.Code,
		Message: fmt.Sprintf("wrong number of arguments for '%s' command", cmd),
	}
}

// ============================================================================
// Protocol Errors (PROTO)
// ============================================================================

var (
	// ErrMalformedFrame indicates the command name could not be determined
	// from the received bytes.
	ErrMalformedFrame = NewDomainError("KV-PROTO-4000", "malformed frame")

	// ErrProtocolLimit indicates a frame exceeded a size limit.
	ErrProtocolLimit = NewDomainError("KV-PROTO-4130", "protocol limit exceeded")
)

// ============================================================================
// Connection Errors (CONN)
// ============================================================================

var (
	// ErrRateLimited indicates the client exceeded its command rate.
	ErrRateLimited = NewDomainError("KV-CONN-4290", "rate limit exceeded")

	// ErrMaxClients indicates the worker pool is full.
	ErrMaxClients = NewDomainError("KV-CONN-5030", "max number of clients reached")
)
