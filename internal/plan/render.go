package plan

import (
	"context"
	"fmt"

	"github.com/Twixan/scylladb-go/internal/query"
	"github.com/Twixan/scylladb-go/internal/session"
)

// Rendered is one statement's text.
type Rendered struct {
	Name      string `json:"name"`
	Statement string `json:"statement"`
}

// Outcome is the result of executing one statement.
type Outcome struct {
	Name      string `json:"name"`
	Statement string `json:"statement"`
	TraceID   string `json:"trace_id,omitempty"`
	Rows      int    `json:"rows"`
}

// StatementError ties a failure to the statement that caused it.
type StatementError struct {
	Index int
	Name  string
	Err   error
}

func (e *StatementError) Error() string {
	return fmt.Sprintf("statement %d (%s): %v", e.Index, e.Name, e.Err)
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

// Render returns the text of every statement in plan order.
func (p *Plan) Render() ([]Rendered, error) {
	out := make([]Rendered, 0, len(p.Statements))
	for i, s := range p.Statements {
		b, err := p.builder(i, s, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, Rendered{Name: s.Name, Statement: b.Build()})
	}
	return out, nil
}

// Run renders and executes every statement through sess in plan order.
// It stops at the first failure and returns the outcomes that completed.
func (p *Plan) Run(ctx context.Context, sess session.Session) ([]Outcome, error) {
	var out []Outcome
	for i, s := range p.Statements {
		b, err := p.builder(i, s, sess)
		if err != nil {
			return out, err
		}

		text := b.Build()
		res, err := b.Execute(ctx, text)
		if err != nil {
			return out, &StatementError{Index: i, Name: s.Name, Err: err}
		}

		o := Outcome{Name: s.Name, Statement: text, TraceID: res.TraceID}
		if res.HasRows() {
			o.Rows = len(res.Rows)
		}
		out = append(out, o)
	}
	return out, nil
}

func (p *Plan) builder(i int, s Statement, sess session.Session) (query.Builder, error) {
	b, err := s.Builder(sess)
	if err != nil {
		return b, &StatementError{Index: i, Name: s.Name, Err: err}
	}
	if p.Strict {
		if err := b.Validate(); err != nil {
			return b, &StatementError{Index: i, Name: s.Name, Err: err}
		}
	}
	return b, nil
}
