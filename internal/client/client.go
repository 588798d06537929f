// Package client is the entry point for applications: it owns one session
// and hands out builders and table helpers bound to it.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Twixan/scylladb-go/internal/journal"
	"github.com/Twixan/scylladb-go/internal/query"
	"github.com/Twixan/scylladb-go/internal/schema"
	"github.com/Twixan/scylladb-go/internal/session"
)

// Client shares one session across every builder it creates.
type Client struct {
	sess    session.Session
	closers []func() error
}

// New connects to the cluster described by cfg. When cfg.Journal is set,
// every statement is also recorded in that journal.
func New(ctx context.Context, cfg *session.Config, logger *slog.Logger) (*Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = session.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	cql, err := session.Open(cfg, session.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	c := NewWithSession(cql)
	c.closers = append(c.closers, cql.Close)

	if cfg.Journal != "" {
		store, err := journal.Open(cfg.Journal)
		if err != nil {
			cql.Close()
			return nil, err
		}
		c.sess = journal.Wrap(cql, store, logger)
		c.closers = append(c.closers, store.Close)
	}
	return c, nil
}

// NewWithSession builds a client over an existing session.
// Close does not close sess.
func NewWithSession(sess session.Session) *Client {
	return &Client{sess: sess}
}

// Session returns the session every builder is bound to.
func (c *Client) Session() session.Session {
	return c.sess
}

// Query starts a SELECT on keyspace.table.
func (c *Client) Query(keyspace, table string) query.Builder {
	return query.New(query.Select, keyspace, table, c.sess)
}

// Builder starts a statement of any operation on keyspace.table.
func (c *Client) Builder(op query.Operation, keyspace, table string) query.Builder {
	return query.New(op, keyspace, table, c.sess)
}

// Table returns the table-level helpers for keyspace.table.
func (c *Client) Table(keyspace, table string) schema.Table {
	return schema.NewTable(keyspace, table, c.sess)
}

// CreateKeyspace creates a SimpleStrategy keyspace if it does not exist.
func (c *Client) CreateKeyspace(ctx context.Context, keyspace string, replicationFactor int) error {
	return schema.CreateKeyspace(ctx, c.sess, keyspace, replicationFactor)
}

// CreateTable creates a table if it does not exist.
func (c *Client) CreateTable(ctx context.Context, def schema.TableDef) error {
	return schema.CreateTable(ctx, c.sess, def)
}

// DropTable drops keyspace.table if it exists.
func (c *Client) DropTable(ctx context.Context, keyspace, table string) error {
	return schema.DropTable(ctx, c.sess, keyspace, table)
}

// Close releases the resources New opened, in reverse order.
func (c *Client) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}
