package app

import (
	"errors"
	"fmt"

	"github.com/pikedit/pike/internal/operation"
)

// ErrQuit signals a normal exit requested by the user. The event loop
// returns it and main treats it as success.
var ErrQuit = errors.New("quit")

// OperationError wraps a failure while executing a named operation, so
// logs and messages can say which command failed.
type OperationError struct {
	Op  operation.Operation
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opError(op operation.Operation, err error) error {
	if err == nil {
		return nil
	}
	return &OperationError{Op: op, Err: err}
}
