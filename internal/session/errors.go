package session

import (
	"errors"
	"fmt"
)

// ExecError wraps a failure reported by the cluster for one statement.
//
// The underlying driver error is kept as-is and reachable via errors.Unwrap;
// no classification or recovery happens here.
type ExecError struct {
	TraceID   string
	Statement string
	Err       error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("execute %q (trace=%s): %v", e.Statement, e.TraceID, e.Err)
	}
	return fmt.Sprintf("execute %q: %v", e.Statement, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// ShapeError reports a result that does not have the shape a helper
// expected, e.g. reading a count from a statement that returned no rows.
// It is distinct from ExecError: the statement itself succeeded.
type ShapeError struct {
	Column  string
	Message string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("unexpected result shape (column=%s): %s", e.Column, e.Message)
	}
	return "unexpected result shape: " + e.Message
}

// IsShapeError returns true if err is or wraps a ShapeError.
func IsShapeError(err error) bool {
	var se *ShapeError
	return errors.As(err, &se)
}

// IsExecError returns true if err is or wraps an ExecError.
func IsExecError(err error) bool {
	var ee *ExecError
	return errors.As(err, &ee)
}
