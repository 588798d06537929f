// Package session provides the statement execution capability used by the
// query builder and schema helpers.
//
// A Session executes one rendered CQL statement, optionally with bound
// values, and returns an opaque tabular Result. Implementations must be safe
// for concurrent use by many in-flight statements; no ordering is imposed
// between statements issued concurrently.
//
// This layer performs no retries and imposes no timeout of its own. Timeouts
// and cancellation come from the caller's context and the cluster config.
package session

import (
	"context"
	"fmt"
)

// Session executes rendered statements.
type Session interface {
	Execute(ctx context.Context, stmt string, values ...any) (*Result, error)
}

// Result is the tabular outcome of a successful execution.
//
// Rows are left undecoded: each row maps column name to the driver's native
// Go value. Decoding into domain types is the caller's job.
type Result struct {
	// TraceID correlates the result with the statement log line.
	TraceID string

	// Columns lists the result column names in server order.
	// Empty for statements that return no rows (INSERT, DDL, ...).
	Columns []string

	// Rows holds the returned rows in server order.
	Rows []map[string]any
}

// HasRows reports whether the statement produced a rows result.
func (r *Result) HasRows() bool {
	return r != nil && len(r.Columns) > 0
}

// RowsNum returns the number of rows in a rows result.
// Returns a ShapeError when the statement produced no rows result.
func (r *Result) RowsNum() (int, error) {
	if !r.HasRows() {
		return 0, &ShapeError{Message: "result carries no rows"}
	}
	return len(r.Rows), nil
}

// Int64 reads an integer column from the given row.
// COUNT(*) and bigint columns arrive as int64; int columns as int.
func (r *Result) Int64(row int, column string) (int64, error) {
	if !r.HasRows() {
		return 0, &ShapeError{Column: column, Message: "result carries no rows"}
	}
	if row < 0 || row >= len(r.Rows) {
		return 0, &ShapeError{Column: column, Message: fmt.Sprintf("row %d out of range (%d rows)", row, len(r.Rows))}
	}
	v, ok := r.Rows[row][column]
	if !ok {
		return 0, &ShapeError{Column: column, Message: "column not present"}
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	default:
		return 0, &ShapeError{Column: column, Message: fmt.Sprintf("unexpected type %T", v)}
	}
}
