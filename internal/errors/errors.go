package errors

import (
	stderrors "errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

type ErrorType string

const (
	ErrTypeNotFound        ErrorType = "NOT_FOUND"
	ErrTypeInvalidInput    ErrorType = "INVALID_INPUT"
	ErrTypeInternal        ErrorType = "INTERNAL"
	ErrTypeUnavailable     ErrorType = "UNAVAILABLE"
	ErrTypeMalformedRecord ErrorType = "MALFORMED_RECORD"
	ErrTypeImbalance       ErrorType = "IMBALANCE"
)

type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Stack   []byte
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func (e *DomainError) StackTrace() []byte {
	return e.Stack
}

func New(errType ErrorType, message string, err error) *DomainError {
	var stack []byte
	if err != nil {
		if stackErr, ok := err.(*goerrors.Error); ok {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func NotFound(message string, err error) *DomainError {
	return New(ErrTypeNotFound, message, err)
}

func InvalidInput(message string, err error) *DomainError {
	return New(ErrTypeInvalidInput, message, err)
}

func Internal(message string, err error) *DomainError {
	return New(ErrTypeInternal, message, err)
}

func Unavailable(message string, err error) *DomainError {
	return New(ErrTypeUnavailable, message, err)
}

// MalformedRecord reports an input record that cannot enter the pipeline,
// e.g. one without an identity field.
func MalformedRecord(message string, err error) *DomainError {
	return New(ErrTypeMalformedRecord, message, err)
}

// Imbalance reports aggregate tables whose group counts no longer add up to
// the number of records they were built from.
func Imbalance(message string, err error) *DomainError {
	return New(ErrTypeImbalance, message, err)
}

// Is reports whether any error in err's chain is a DomainError of the given type.
func Is(err error, errType ErrorType) bool {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de.Type == errType
	}
	return false
}
