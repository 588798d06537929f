package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/scylladb/gocqlx/v3"
)

// CQLSession executes statements against a Scylla/Cassandra cluster.
//
// It wraps a gocqlx session, which pools connections and is safe for
// concurrent use. CQLSession adds a trace id and a log line per statement;
// it never retries.
type CQLSession struct {
	sess   gocqlx.Session
	log    *slog.Logger
	traces TraceGenerator
}

// Option configures a CQLSession.
type Option func(*CQLSession)

// WithLogger sets the logger used for per-statement log lines.
func WithLogger(l *slog.Logger) Option {
	return func(s *CQLSession) {
		s.log = l
	}
}

// WithTraceGenerator overrides the trace id generator (for testing).
func WithTraceGenerator(g TraceGenerator) Option {
	return func(s *CQLSession) {
		s.traces = g
	}
}

// Open connects to the cluster described by cfg.
func Open(cfg *Config, opts ...Option) (*CQLSession, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cluster, err := cfg.cluster()
	if err != nil {
		return nil, err
	}

	s := &CQLSession{
		log:    slog.Default(),
		traces: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.log.Debug("connecting to cluster", "hosts", cfg.Hosts, "keyspace", cfg.Keyspace, "consistency", cfg.Consistency)
	s.sess, err = gocqlx.WrapSession(cluster.CreateSession())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	s.log.Info("connected to cluster", "hosts", cfg.Hosts)

	return s, nil
}

// Execute runs one statement with optional bound values and collects the
// rows it returns. Failures come back as *ExecError.
func (s *CQLSession) Execute(ctx context.Context, stmt string, values ...any) (*Result, error) {
	traceID := s.traces.Generate()
	start := time.Now()

	q := s.sess.ContextQuery(ctx, stmt, nil).Bind(values...)
	iter := q.Query.Iter()

	cols := iter.Columns()
	rows, err := iter.SliceMap()
	if closeErr := iter.Close(); err == nil {
		err = closeErr
	}
	q.Release()

	elapsed := time.Since(start)
	if err != nil {
		s.log.Warn("statement failed",
			"trace_id", traceID,
			"statement", stmt,
			"duration", elapsed,
			"error", err)
		return nil, &ExecError{TraceID: traceID, Statement: stmt, Err: err}
	}

	s.log.Debug("statement executed",
		"trace_id", traceID,
		"statement", stmt,
		"rows", len(rows),
		"duration", elapsed)

	res := &Result{TraceID: traceID, Rows: rows}
	for _, c := range cols {
		res.Columns = append(res.Columns, c.Name)
	}
	return res, nil
}

// Close closes the underlying session and its connections.
func (s *CQLSession) Close() error {
	s.sess.Close()
	return nil
}
