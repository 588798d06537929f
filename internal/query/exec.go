package query

import (
	"context"
	"fmt"
	"reflect"
	"slices"

	"github.com/Twixan/scylladb-go/internal/session"
)

// Execute submits already-rendered text through the session with no bound
// values. Session failures are returned unchanged.
func (b Builder) Execute(ctx context.Context, stmt string) (*session.Result, error) {
	if b.sess == nil {
		return nil, ErrNoSession
	}
	return b.sess.Execute(ctx, stmt)
}

// Run renders the builder and executes the result.
func (b Builder) Run(ctx context.Context) (*session.Result, error) {
	return b.Execute(ctx, b.Build())
}

// WithJSON encodes doc and installs it as the JSON payload clause. The
// payload always becomes the first clause; any earlier JSON payload is
// replaced. The operation is left unchanged, so an InsertIfNotExists
// builder stays one.
func (b Builder) WithJSON(doc any) (Builder, error) {
	payload, err := EncodePayload(doc)
	if err != nil {
		return b, fmt.Errorf("encode json payload: %w", err)
	}

	clauses := make([]Clause, 0, len(b.clauses)+1)
	clauses = append(clauses, JSONPayload(payload))
	for _, c := range b.clauses {
		if c.Kind != ClauseJSON {
			clauses = append(clauses, c)
		}
	}
	b.clauses = clauses
	return b, nil
}

// Insert retags the builder as INSERT, embeds doc as a JSON payload and
// executes the statement in one request. The outcome is the session's: no
// retry, no partial success.
func (b Builder) Insert(ctx context.Context, doc any) (*session.Result, error) {
	b.op = Insert
	b, err := b.WithJSON(doc)
	if err != nil {
		return nil, err
	}
	return b.Run(ctx)
}

// InsertBulk inserts every record of a slice or array with one
// INSERT INTO ... JSON '[...]' statement and one session call.
//
// Records are not shape-checked locally; a malformed record fails the
// whole statement on the server. On failure nothing indicates which
// records, if any, were applied.
func (b Builder) InsertBulk(ctx context.Context, records any) (*session.Result, error) {
	rv := reflect.ValueOf(records)
	if !rv.IsValid() || !slices.Contains([]reflect.Kind{reflect.Slice, reflect.Array}, rv.Kind()) {
		return nil, ErrNotSequence
	}
	if rv.Len() == 0 {
		return nil, ErrEmptyBulk
	}
	return b.Insert(ctx, records)
}
