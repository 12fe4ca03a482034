package graph

import "fmt"

// ErrorClass classifies a graph error.
//
// The engine has no recoverable-error taxonomy: every failure is a violated
// programming contract, either caught during graph construction (validation)
// or at an operation boundary (contract).
type ErrorClass string

const (
	// ErrorClassValidation indicates a malformed graph description, caught
	// while building the graph. Examples: duplicate names, edges referencing
	// unknown units, a composite group with no entry operation.
	ErrorClassValidation ErrorClass = "validation"

	// ErrorClassContract indicates a violated caller contract on an engine
	// operation. Examples: a nil graph passed to FlushUpdates.
	ErrorClassContract ErrorClass = "contract"
)

// Error represents a classified graph error with context.
type Error struct {
	// Class is the error classification.
	Class ErrorClass `json:"class"`

	// Message is the human-readable error message.
	Message string `json:"message"`

	// Node is the name of the node that caused the error, if applicable.
	Node string `json:"node,omitempty"`

	// Err is the underlying error that caused this error.
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Class, e.Message)
	if e.Node != "" {
		msg = fmt.Sprintf("[%s] %s (node=%s)", e.Class, e.Message, e.Node)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements error equality checking for errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Class == t.Class
}

// WithNode attaches the offending node name to the error.
func (e *Error) WithNode(name string) *Error {
	e.Node = name
	return e
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, err error) *Error {
	return &Error{
		Class:   ErrorClassValidation,
		Message: message,
		Err:     err,
	}
}

// NewContractError creates a new contract error.
func NewContractError(message string, err error) *Error {
	return &Error{
		Class:   ErrorClassContract,
		Message: message,
		Err:     err,
	}
}
