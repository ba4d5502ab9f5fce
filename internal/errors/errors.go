// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeInvalidAmount indicates an unparseable or non-finite numeric input
	TypeInvalidAmount Type = "INVALID_AMOUNT"

	// TypeNegativeValue indicates a negative value where one is forbidden
	TypeNegativeValue Type = "NEGATIVE_VALUE"

	// TypeUnknownEmployeeLevel indicates an employee level absent from the rule table
	TypeUnknownEmployeeLevel Type = "UNKNOWN_EMPLOYEE_LEVEL"

	// TypeUnknownDifficultyLevel indicates a difficulty level absent from the rule table
	TypeUnknownDifficultyLevel Type = "UNKNOWN_DIFFICULTY_LEVEL"

	// TypeMissingRuleData indicates a difficulty entity exists but has no rule entry
	TypeMissingRuleData Type = "MISSING_RULE_DATA"

	// TypeRuleTableUnavailable indicates the rule table could not be loaded
	TypeRuleTableUnavailable Type = "RULE_TABLE_UNAVAILABLE"

	// TypeInput indicates an input validation error
	TypeInput Type = "INPUT_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"

	// TypeNotFound indicates a resource not found error
	TypeNotFound Type = "NOT_FOUND"

	// TypeConflict indicates an operation rejected by a referential constraint
	TypeConflict Type = "CONFLICT"
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

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
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

// IsType checks if an error is of a specific type, unwrapping as needed
func IsType(err error, t Type) bool {
	for err != nil {
		if e, ok := err.(*Error); ok && e.Type == t {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// TypeOf returns the domain type of an error, or TypeInternal for foreign errors
func TypeOf(err error) Type {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Type
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return TypeInternal
}

// InvalidAmount creates an invalid amount error for a named field
func InvalidAmount(field string, value interface{}) *Error {
	return Newf(TypeInvalidAmount, "invalid decimal value for %q", field).
		WithContext("field", field).
		WithContext("value", value)
}

// NegativeValue creates a negative value error for a named field
func NegativeValue(field string, value interface{}) *Error {
	return Newf(TypeNegativeValue, "negative value not allowed for %q", field).
		WithContext("field", field).
		WithContext("value", value)
}

// UnknownEmployeeLevel creates an unknown employee level error
func UnknownEmployeeLevel(level string) *Error {
	return Newf(TypeUnknownEmployeeLevel, "employee level not in rule table: %s", level).
		WithContext("employee_level", level)
}

// UnknownDifficultyLevel creates an unknown difficulty level error
func UnknownDifficultyLevel(level string) *Error {
	return Newf(TypeUnknownDifficultyLevel, "difficulty level not in rule table: %s", level).
		WithContext("difficulty_level", level)
}

// MissingRuleData creates a missing rule data error
func MissingRuleData(level string) *Error {
	return Newf(TypeMissingRuleData, "no rule entry for difficulty level: %s", level).
		WithContext("difficulty_level", level)
}

// RuleTableUnavailable creates a rule table load error
func RuleTableUnavailable(cause error) *Error {
	return Wrap(TypeRuleTableUnavailable, "pricing rule table unavailable", cause)
}

// Input creates an input error
func Input(message string) *Error {
	return New(TypeInput, message)
}

// NotFound creates a not found error
func NotFound(resourceType, identifier string) *Error {
	return Newf(TypeNotFound, "%s not found: %s", resourceType, identifier).
		WithContext("id", identifier)
}

// Conflict creates a conflict error
func Conflict(message string) *Error {
	return New(TypeConflict, message)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
