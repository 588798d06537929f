// Package testutil provides deterministic test doubles shared across
// package tests.
package testutil

import (
	"context"
	"slices"
	"sync"

	"github.com/Twixan/scylladb-go/internal/session"
)

// Call is one statement received by a RecordingSession.
type Call struct {
	Statement string
	Values    []any
}

// Response is a scripted reply for a RecordingSession.
type Response struct {
	Result *session.Result
	Err    error
}

// RecordingSession is an in-memory session.Session that records every
// statement and replies from a script.
//
// Replies are consumed in order; once the script is exhausted the session
// returns an empty result. Context cancellation is honored before
// recording.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type RecordingSession struct {
	mu        sync.Mutex
	calls     []Call
	responses []Response
	traces    session.TraceGenerator
}

// NewRecordingSession creates a session that replies with responses in order.
func NewRecordingSession(responses ...Response) *RecordingSession {
	return &RecordingSession{
		responses: responses,
		traces:    NewFixedTraceGenerator(""),
	}
}

// Execute records the statement and returns the next scripted response.
func (s *RecordingSession) Execute(ctx context.Context, stmt string, values ...any) (*session.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, Call{Statement: stmt, Values: slices.Clone(values)})

	traceID := s.traces.Generate()
	if len(s.responses) == 0 {
		return &session.Result{TraceID: traceID}, nil
	}
	resp := s.responses[0]
	s.responses = s.responses[1:]

	if resp.Err != nil {
		return nil, &session.ExecError{TraceID: traceID, Statement: stmt, Err: resp.Err}
	}
	res := resp.Result
	if res == nil {
		res = &session.Result{}
	}
	res.TraceID = traceID
	return res, nil
}

// Calls returns a copy of the recorded calls in arrival order.
func (s *RecordingSession) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Statements returns the recorded statement texts in arrival order.
func (s *RecordingSession) Statements() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.calls))
	for i, c := range s.calls {
		out[i] = c.Statement
	}
	return out
}

// WithTraceGenerator replaces the trace id source and returns s.
func (s *RecordingSession) WithTraceGenerator(g session.TraceGenerator) *RecordingSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.traces = g
	return s
}
