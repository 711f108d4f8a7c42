package errors

import (
	"fmt"
)

// ParseError represents a theme parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// InvalidAttributeValueError reports a value outside the legal domain of an
// attribute slot.
type InvalidAttributeValueError struct {
	Style     string
	Attribute string
	Value     any
	Message   string
}

// NewInvalidAttributeValueError constructs an InvalidAttributeValueError.
func NewInvalidAttributeValueError(style, attribute string, value any, message string) error {
	return &InvalidAttributeValueError{Style: style, Attribute: attribute, Value: value, Message: message}
}

func (e *InvalidAttributeValueError) Error() string {
	if e == nil {
		return ""
	}
	if e.Style != "" {
		return fmt.Sprintf("invalid attribute error: %s :%s %v: %s", e.Style, e.Attribute, e.Value, e.Message)
	}
	return fmt.Sprintf("invalid attribute error: :%s %v: %s", e.Attribute, e.Value, e.Message)
}

// InvalidReferenceError reports a malformed style reference such as a filter
// without a parameter or a legacy color pair without a string.
type InvalidReferenceError struct {
	Reference string
	Message   string
}

// NewInvalidReferenceError constructs an InvalidReferenceError.
func NewInvalidReferenceError(reference any, message string) error {
	return &InvalidReferenceError{Reference: fmt.Sprintf("%v", reference), Message: message}
}

func (e *InvalidReferenceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("invalid reference error: %s: %s", e.Reference, e.Message)
}

// InheritanceCycleError is returned when an inherit assignment would make a
// style reachable from itself.
type InheritanceCycleError struct {
	Style string
	Path  []string
}

// NewInheritanceCycleError constructs an InheritanceCycleError.
func NewInheritanceCycleError(style string, path []string) error {
	return &InheritanceCycleError{Style: style, Path: append([]string(nil), path...)}
}

func (e *InheritanceCycleError) Error() string {
	if e == nil {
		return ""
	}
	if len(e.Path) > 0 {
		return fmt.Sprintf("inheritance cycle error: %s: %v", e.Style, e.Path)
	}
	return fmt.Sprintf("inheritance cycle error: %s", e.Style)
}

// UnknownStyleError is returned by signalling lookups of undefined styles.
type UnknownStyleError struct {
	Name string
}

// NewUnknownStyleError constructs an UnknownStyleError.
func NewUnknownStyleError(name string) error {
	return &UnknownStyleError{Name: name}
}

func (e *UnknownStyleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown style error: %s", e.Name)
}

// UnknownSurfaceError is returned when an operation targets a surface that
// was never registered.
type UnknownSurfaceError struct {
	Name string
}

// NewUnknownSurfaceError constructs an UnknownSurfaceError.
func NewUnknownSurfaceError(name string) error {
	return &UnknownSurfaceError{Name: name}
}

func (e *UnknownSurfaceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unknown surface error: %s", e.Name)
}

// AliasCycleError reports a style alias chain that loops back on itself.
type AliasCycleError struct {
	Name string
}

// NewAliasCycleError constructs an AliasCycleError.
func NewAliasCycleError(name string) error {
	return &AliasCycleError{Name: name}
}

func (e *AliasCycleError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("alias cycle error: %s", e.Name)
}

// RecursionLimitError is returned when style resolution nests deeper than
// the configured ceiling.
type RecursionLimitError struct {
	Name  string
	Depth int
}

// NewRecursionLimitError constructs a RecursionLimitError.
func NewRecursionLimitError(name string, depth int) error {
	return &RecursionLimitError{Name: name, Depth: depth}
}

func (e *RecursionLimitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Name != "" {
		return fmt.Sprintf("recursion limit error: %s: depth %d", e.Name, e.Depth)
	}
	return fmt.Sprintf("recursion limit error: depth %d", e.Depth)
}
