package validation

import (
	"fmt"
)

// Kind classifies a validation failure.
type Kind string

const (
	KindMissingItemNumber Kind = "MissingItemNumber"
	KindInvalidItemNumber Kind = "InvalidItemNumber"
	KindInvalidQuantity   Kind = "InvalidQuantity"
	KindMalformedLocation Kind = "MalformedLocation"
	KindInvalidArea       Kind = "InvalidArea"
	KindInvalidMode       Kind = "InvalidMode"
	KindUnprintableText   Kind = "UnprintableText"
)

// Sentinels for errors.Is. They match any ValidationError of the same kind.
var (
	ErrMissingItemNumber = &ValidationError{Kind: KindMissingItemNumber}
	ErrInvalidItemNumber = &ValidationError{Kind: KindInvalidItemNumber}
	ErrInvalidQuantity   = &ValidationError{Kind: KindInvalidQuantity}
	ErrMalformedLocation = &ValidationError{Kind: KindMalformedLocation}
	ErrInvalidArea       = &ValidationError{Kind: KindInvalidArea}
	ErrInvalidMode       = &ValidationError{Kind: KindInvalidMode}
	ErrUnprintableText   = &ValidationError{Kind: KindUnprintableText}
)

// ValidationError reports a single field that failed validation.
type ValidationError struct {
	// Kind is the failure class.
	Kind Kind

	// Field is the input column or form field that failed.
	Field string

	// Value is the offending input, as received.
	Value string

	// Message is a human-readable explanation.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports whether target is a ValidationError of the same kind.
func (e *ValidationError) Is(target error) bool {
	t, ok := target.(*ValidationError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// RowValidationError wraps a ValidationError with the position of the
// upload row that produced it.
type RowValidationError struct {
	// Row is the 1-based index of the data row (header not counted).
	Row int

	// Line is the physical line (or sheet row) the data row starts on.
	Line int

	// Err is the underlying field failure.
	Err *ValidationError
}

// Error implements the error interface.
func (e *RowValidationError) Error() string {
	return fmt.Sprintf("row %d (line %d): %v", e.Row, e.Line, e.Err)
}

// Unwrap exposes the field failure to errors.Is / errors.As.
func (e *RowValidationError) Unwrap() error {
	return e.Err
}

// Kind returns the kind of the wrapped failure.
func (e *RowValidationError) Kind() Kind {
	return e.Err.Kind
}
