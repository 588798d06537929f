package journal

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Twixan/scylladb-go/internal/session"
)

// Session records every statement executed through the wrapped session.
type Session struct {
	next  session.Session
	store *Store
	log   *slog.Logger
	since func(time.Time) time.Duration
}

var _ session.Session = (*Session)(nil)

// Wrap returns a session that journals each call to next in store.
// A nil logger discards journal write warnings.
func Wrap(next session.Session, store *Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{next: next, store: store, log: logger, since: time.Since}
}

// Execute forwards to the wrapped session and records the outcome.
// A journal write failure is logged and never replaces the statement's
// own result.
func (s *Session) Execute(ctx context.Context, stmt string, values ...any) (*session.Result, error) {
	start := time.Now()
	res, err := s.next.Execute(ctx, stmt, values...)

	e := Entry{
		Statement:  stmt,
		OK:         err == nil,
		DurationUS: s.since(start).Microseconds(),
	}
	if res != nil {
		e.TraceID = res.TraceID
	}
	if err != nil {
		e.Error = err.Error()
		var execErr *session.ExecError
		if errors.As(err, &execErr) && e.TraceID == "" {
			e.TraceID = execErr.TraceID
		}
	}

	// Record even when ctx is already cancelled.
	if _, werr := s.store.Append(context.WithoutCancel(ctx), e); werr != nil {
		s.log.Warn("journal write failed", "statement", stmt, "error", werr)
	}
	return res, err
}
