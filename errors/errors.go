package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the error type returned by providers and registries.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Sentinels for errors.Is matching. ErrDeserialization also matches
// ErrSerialization because decoding failures refine encoding failures.
var (
	ErrSerialization         = &AppError{Code: ErrCodeSerialization}
	ErrDeserialization       = &AppError{Code: ErrCodeDeserialization}
	ErrProviderNotRegistered = &AppError{Code: ErrCodeProviderNotRegistered}
	ErrProviderConstruction  = &AppError{Code: ErrCodeProviderConstruction}
	ErrInvalidConfig         = &AppError{Code: ErrCodeInvalidConfig}
)

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an *AppError whose code this error's code
// equals or refines. Only the code takes part in the comparison.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t == nil {
		return false
	}
	return e.Code.Refines(t.Code)
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// Serialization creates an error for a value that could not be encoded.
func Serialization(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeSerialization, Message: message, Cause: cause}
}

// Deserialization creates an error for text that could not be decoded.
func Deserialization(message string, cause error) *AppError {
	return &AppError{Code: ErrCodeDeserialization, Message: message, Cause: cause}
}

// EmptyInput creates the deserialization error for empty or whitespace-only text.
func EmptyInput() *AppError {
	return Deserialization("input text is empty or whitespace", nil)
}

// ProviderNotRegistered creates an error for resolving a registry without registrations.
func ProviderNotRegistered() *AppError {
	return &AppError{
		Code:    ErrCodeProviderNotRegistered,
		Message: "no serialization provider registered",
	}
}

// ProviderConstruction creates an error for a registration that failed to build its provider.
func ProviderConstruction(kind string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeProviderConstruction,
		Message: fmt.Sprintf("failed to construct provider from %s registration", kind),
		Details: map[string]any{"kind": kind},
		Cause:   cause,
	}
}

// InvalidConfig creates an error for an invalid configuration field.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code:    ErrCodeInvalidConfig,
		Message: fmt.Sprintf("invalid configuration: %s", reason),
		Details: details,
	}
}

// Wrap converts err into an AppError with the given code. An AppError already
// in the chain whose code refines code is returned unchanged. Wrap(nil) is nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok && appErr.Code.Refines(code) {
		return appErr
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// IsSerialization reports whether err is an encoding or decoding failure.
func IsSerialization(err error) bool {
	return stderrors.Is(err, ErrSerialization)
}

// IsDeserialization reports whether err is a decoding failure.
func IsDeserialization(err error) bool {
	return stderrors.Is(err, ErrDeserialization)
}

// IsNotRegistered reports whether err came from resolving an empty registry.
func IsNotRegistered(err error) bool {
	return stderrors.Is(err, ErrProviderNotRegistered)
}

// IsConfiguration reports whether err is a composition or configuration error.
func IsConfiguration(err error) bool {
	return IsConfigurationCode(CodeOf(err))
}
