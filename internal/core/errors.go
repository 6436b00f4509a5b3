package core

import (
	"errors"
	"fmt"
)

const (
	// EmptyTextMessage is shown when analysis is requested on blank input
	EmptyTextMessage = "Please enter some text to analyze!"

	// FallbackErrorMessage is shown when a failure carries no message of its own
	FallbackErrorMessage = "Error connecting to server"
)

// ErrBusy is returned when analysis is requested while a request is in flight
var ErrBusy = errors.New("analysis already in progress")

// ErrorKind classifies workflow failures
type ErrorKind int

const (
	ErrorKindValidation ErrorKind = iota
	ErrorKindNetwork
	ErrorKindServer
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindValidation:
		return "validation"
	case ErrorKindNetwork:
		return "network"
	case ErrorKindServer:
		return "server"
	default:
		return "unknown"
	}
}

// ClassificationError is a typed failure produced by a classifier or by input validation
type ClassificationError struct {
	Kind ErrorKind
	// Message is the boundary-supplied message, empty when none was given
	Message string
	// Status is the HTTP status for server failures, 0 otherwise
	Status int
	Err    error
}

func (e *ClassificationError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = FallbackErrorMessage
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s error: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, msg)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns the error reported for blank input
func NewValidationError() *ClassificationError {
	return &ClassificationError{Kind: ErrorKindValidation, Message: EmptyTextMessage}
}

// NewNetworkError wraps a transport failure
func NewNetworkError(err error) *ClassificationError {
	return &ClassificationError{Kind: ErrorKindNetwork, Err: err}
}

// NewServerError records a non-success response and the message it carried, if any
func NewServerError(status int, message string, err error) *ClassificationError {
	return &ClassificationError{Kind: ErrorKindServer, Status: status, Message: message, Err: err}
}

// UserMessage collapses any workflow error into the single string shown to the user
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *ClassificationError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return FallbackErrorMessage
}
