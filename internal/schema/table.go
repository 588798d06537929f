// Package schema issues keyspace and table DDL and a few table-level
// helpers (indexes, columns, counts) through a session.Session.
//
// Every helper is one statement, one round trip; failures are returned as
// the session reported them.
package schema

import (
	"context"
	"fmt"

	"github.com/Twixan/scylladb-go/internal/session"
)

// Table addresses one table for the table-level helpers.
type Table struct {
	Keyspace string
	Name     string
	sess     session.Session
}

// NewTable binds a table to a session.
func NewTable(keyspace, name string, sess session.Session) Table {
	return Table{Keyspace: keyspace, Name: name, sess: sess}
}

// Target returns keyspace.name.
func (t Table) Target() string {
	return t.Keyspace + "." + t.Name
}

// CreateIndex creates a secondary index on column if it does not exist.
func (t Table) CreateIndex(ctx context.Context, index, column string) error {
	return t.exec(ctx, fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", index, t.Target(), column))
}

// DropIndex drops an index of the table's keyspace if it exists.
func (t Table) DropIndex(ctx context.Context, index string) error {
	return t.exec(ctx, fmt.Sprintf("DROP INDEX IF EXISTS %s.%s", t.Keyspace, index))
}

// AddColumn adds a column of the given CQL type.
func (t Table) AddColumn(ctx context.Context, column, cqlType string) error {
	return t.exec(ctx, fmt.Sprintf("ALTER TABLE %s ADD %s %s", t.Target(), column, cqlType))
}

// DropColumn removes a column.
func (t Table) DropColumn(ctx context.Context, column string) error {
	return t.exec(ctx, fmt.Sprintf("ALTER TABLE %s DROP %s", t.Target(), column))
}

// Truncate removes all rows.
func (t Table) Truncate(ctx context.Context) error {
	return t.exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", t.Target()))
}

// CountRows returns SELECT COUNT(*) for the table.
// A result without a count column is reported as a session.ShapeError.
func (t Table) CountRows(ctx context.Context) (int64, error) {
	res, err := t.sess.Execute(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", t.Target()))
	if err != nil {
		return 0, err
	}
	n, err := res.Int64(0, "count")
	if err != nil {
		return 0, fmt.Errorf("count rows of %s: %w", t.Target(), err)
	}
	return n, nil
}

// CheckDuplicates reports whether any value of column occurs more than once.
//
// CQL has no HAVING, so groups are counted server side and filtered here.
// GROUP BY is only accepted on primary key columns.
func (t Table) CheckDuplicates(ctx context.Context, column string) (bool, error) {
	stmt := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s GROUP BY %s", column, t.Target(), column)
	res, err := t.sess.Execute(ctx, stmt)
	if err != nil {
		return false, err
	}
	if _, err := res.RowsNum(); err != nil {
		return false, fmt.Errorf("check duplicates on %s.%s: %w", t.Target(), column, err)
	}

	for i := range res.Rows {
		n, err := res.Int64(i, "count")
		if err != nil {
			return false, fmt.Errorf("check duplicates on %s.%s: %w", t.Target(), column, err)
		}
		if n > 1 {
			return true, nil
		}
	}
	return false, nil
}

func (t Table) exec(ctx context.Context, stmt string) error {
	_, err := t.sess.Execute(ctx, stmt)
	return err
}
