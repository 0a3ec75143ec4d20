package models

import (
	"errors"
	"fmt"
	"strings"
)

// Operation is the HTTP-style verb the remote function dispatches on.
type Operation string

const (
	OperationGet  Operation = "GET"
	OperationPut  Operation = "PUT"
	OperationPost Operation = "POST"
)

// Operations lists the selectable operations in display order.
var Operations = []Operation{OperationGet, OperationPut, OperationPost}

// ParseOperation converts selector text into an Operation.
func ParseOperation(s string) (Operation, error) {
	for _, op := range Operations {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// ShowsDetails reports whether the career and college fields apply to the operation.
func (o Operation) ShowsDetails() bool {
	return o != OperationGet
}

// OperationNames returns the selector options.
func OperationNames() []string {
	names := make([]string, len(Operations))
	for i, op := range Operations {
		names[i] = string(op)
	}
	return names
}

// Student is the record carried in both directions.
type Student struct {
	Name    string `json:"name"`
	Career  string `json:"career"`
	College string `json:"college"`
}

// Request is the payload sent to the function.
type Request struct {
	Operation Operation `json:"httpMethod"`
	Data      Student   `json:"data"`
}

// NewRequest builds a payload from the current form state.
func NewRequest(op Operation, name, career, college string) Request {
	return Request{
		Operation: op,
		Data: Student{
			Name:    name,
			Career:  career,
			College: college,
		},
	}
}

// Envelope is the response shape returned by the function. Body holds JSON text.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// IsSuccess reports whether the envelope carries a success status.
func (e Envelope) IsSuccess() bool {
	return e.StatusCode == 200 || e.StatusCode == 201
}

// Result is a decoded success response.
type Result struct {
	StatusCode int
	Student    Student
}

// String renders the result for the result display.
func (r Result) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Status Code: %d\n", r.StatusCode)
	fmt.Fprintf(&b, "Student Name: %s\n", r.Student.Name)
	fmt.Fprintf(&b, "Career: %s\n", r.Student.Career)
	fmt.Fprintf(&b, "College: %s\n", r.Student.College)
	return b.String()
}

// ErrRemoteCallFailed matches every failure of a remote invocation.
var ErrRemoteCallFailed = errors.New("remote call failed")

// StatusError is returned when the function answered with a non-success envelope.
// Its message is the raw envelope as received.
type StatusError struct {
	Raw []byte
}

func (e *StatusError) Error() string {
	return string(e.Raw)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRemoteCallFailed
}

// CallError wraps transport and decoding failures without altering their message.
type CallError struct {
	Err error
}

func (e *CallError) Error() string {
	if e.Err == nil {
		return ErrRemoteCallFailed.Error()
	}
	return e.Err.Error()
}

func (e *CallError) Unwrap() error {
	return e.Err
}

func (e *CallError) Is(target error) bool {
	return target == ErrRemoteCallFailed
}
