// Package errors provides the typed failures returned by every fallible engine operation.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeDimensionMismatch indicates incompatible dimensions in add/sub or conversion
	TypeDimensionMismatch Type = "DIMENSION_MISMATCH"

	// TypeScaleIncoherence indicates unequal scales under the strict policy
	TypeScaleIncoherence Type = "SCALE_INCOHERENCE"

	// TypePrecisionLoss indicates a non-exact conversion without lossy opt-in
	TypePrecisionLoss Type = "PRECISION_LOSS"

	// TypeAffineCombinationInvalid indicates an illegal operation on affine quantities
	TypeAffineCombinationInvalid Type = "AFFINE_COMBINATION_INVALID"

	// TypeOverflow indicates an exponent or value outside representable bounds
	TypeOverflow Type = "OVERFLOW"

	// TypeStorageMismatch indicates operands with different numeric storage
	TypeStorageMismatch Type = "STORAGE_MISMATCH"

	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeParsing indicates a parsing error
	TypeParsing Type = "PARSING_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeNotFound indicates an unknown unit, scope or symbol
	TypeNotFound Type = "NOT_FOUND"
)

// Error represents a domain error with context
type Error struct {
	Type    Type                   `json:"type"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same type, so that
// errors.Is(err, errors.New(TypeOverflow, "")) matches any overflow.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an error with formatted context
func Wrapf(errType Type, cause error, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// IsType checks if an error, or any error it wraps, is of a specific type
func IsType(err error, t Type) bool {
	return stderrors.Is(err, &Error{Type: t})
}

// TypeOf returns the type of the first *Error in err's chain, or "" if there is none
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// DimensionMismatch creates a dimension mismatch error
func DimensionMismatch(operation string, left, right fmt.Stringer) *Error {
	return Newf(TypeDimensionMismatch, "%s: dimension %s does not match %s", operation, left, right).
		WithContext("left", left.String()).
		WithContext("right", right.String())
}

// ScaleIncoherence creates a scale incoherence error
func ScaleIncoherence(operation string, left, right fmt.Stringer) *Error {
	return Newf(TypeScaleIncoherence, "%s: scale %s does not match %s; rescale explicitly first", operation, left, right).
		WithContext("left", left.String()).
		WithContext("right", right.String())
}

// PrecisionLoss creates a precision loss error
func PrecisionLoss(message string) *Error {
	return New(TypePrecisionLoss, message)
}

// AffineCombinationInvalid creates an affine combination error
func AffineCombinationInvalid(operation string) *Error {
	return Newf(TypeAffineCombinationInvalid, "%s: affine quantities must be linearized first", operation)
}

// Overflow creates an overflow error
func Overflow(message string) *Error {
	return New(TypeOverflow, message)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// Parsing creates a parsing error
func Parsing(message string, cause error) *Error {
	return Wrap(TypeParsing, message, cause)
}

// NotFound creates a not found error
func NotFound(kind, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", kind, identifier)
}
