package query

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Twixan/scylladb-go/internal/session"
	"github.com/Twixan/scylladb-go/internal/testutil"
)

type record struct {
	Age   int     `json:"age"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func TestExecute_PassesTextThrough(t *testing.T) {
	sess := testutil.NewRecordingSession()
	b := New(Select, "ks", "users", sess).Eq("id", "7")

	_, err := b.Execute(context.Background(), b.Build())
	require.NoError(t, err)

	calls := sess.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "SELECT * FROM ks.users WHERE id = '7';", calls[0].Statement)
	assert.Empty(t, calls[0].Values)
}

func TestRun_RendersAndExecutes(t *testing.T) {
	sess := testutil.NewRecordingSession(testutil.Response{
		Result: &session.Result{Columns: []string{"name"}, Rows: []map[string]any{{"name": "ann"}}},
	})

	res, err := New(Select, "ks", "users", sess).Select("name").Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT name FROM ks.users;"}, sess.Statements())
	assert.Equal(t, "ann", res.Rows[0]["name"])
}

func TestExecute_NoSession(t *testing.T) {
	_, err := New(Select, "ks", "t", nil).Run(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestExecute_FailurePropagatesOpaquely(t *testing.T) {
	cause := errors.New("no hosts available")
	sess := testutil.NewRecordingSession(testutil.Response{Err: cause})

	_, err := New(Delete, "ks", "t", sess).Eq("id", "1").Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.True(t, session.IsExecError(err))
	assert.Len(t, sess.Calls(), 1, "no retry")
}

func TestInsert_SingleDocument(t *testing.T) {
	sess := testutil.NewRecordingSession()

	_, err := New(Select, "ks", "users", sess).
		Insert(context.Background(), record{Age: 33, Name: "Johnny", Score: 100.5})
	require.NoError(t, err)

	assert.Equal(t,
		[]string{`INSERT INTO ks.users JSON '{"age":33,"name":"Johnny","score":100.5}';`},
		sess.Statements())
}

func TestInsert_RetagsInsertIfNotExists(t *testing.T) {
	sess := testutil.NewRecordingSession()

	_, err := New(InsertIfNotExists, "ks", "t", sess).Insert(context.Background(), map[string]any{"id": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{`INSERT INTO ks.t JSON '{"id":1}';`}, sess.Statements())
}

func TestInsert_EscapesQuotesInPayload(t *testing.T) {
	sess := testutil.NewRecordingSession()

	_, err := New(Insert, "ks", "t", sess).Insert(context.Background(), map[string]any{"name": "O'Brien"})
	require.NoError(t, err)
	assert.Equal(t, []string{`INSERT INTO ks.t JSON '{"name":"O''Brien"}';`}, sess.Statements())
}

func TestInsert_EncodeFailureMakesNoCall(t *testing.T) {
	sess := testutil.NewRecordingSession()

	_, err := New(Insert, "ks", "t", sess).Insert(context.Background(), map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode json payload")
	assert.Empty(t, sess.Calls())
}

func TestInsertBulk_OneStatementOneCall(t *testing.T) {
	sess := testutil.NewRecordingSession()
	records := []record{
		{Age: 33, Name: "Johnny Doe the first", Score: 100.0},
		{Age: 22, Name: "Johnny Doe the second", Score: 88.5},
	}

	_, err := New(Select, "ks", "t", sess).InsertBulk(context.Background(), records)
	require.NoError(t, err)

	require.Len(t, sess.Calls(), 1)
	assert.Equal(t,
		`INSERT INTO ks.t JSON '[{"age":33,"name":"Johnny Doe the first","score":100},{"age":22,"name":"Johnny Doe the second","score":88.5}]';`,
		sess.Statements()[0])
}

func TestInsertBulk_MapRecords(t *testing.T) {
	sess := testutil.NewRecordingSession()
	records := []map[string]any{
		{"name": "a", "age": 1},
		{"age": 2, "name": "b"},
	}

	_, err := New(Insert, "ks", "t", sess).InsertBulk(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{`INSERT INTO ks.t JSON '[{"age":1,"name":"a"},{"age":2,"name":"b"}]';`},
		sess.Statements())
}

func TestInsertBulk_TextStoredAsGiven(t *testing.T) {
	sess := testutil.NewRecordingSession()
	records := []map[string]any{{"name": "Rene\u0301"}, {"name": "Ren\u00e9"}}

	_, err := New(Insert, "ks", "t", sess).InsertBulk(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"INSERT INTO ks.t JSON '[{\"name\":\"Rene\u0301\"},{\"name\":\"Ren\u00e9\"}]';"},
		sess.Statements())
}

func TestInsertBulk_CollidingKeysMakeNoCall(t *testing.T) {
	sess := testutil.NewRecordingSession()
	records := []map[string]any{{"e\u0301": 1, "\u00e9": 2}}

	_, err := New(Insert, "ks", "t", sess).InsertBulk(context.Background(), records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NFC")
	assert.Empty(t, sess.Calls())
}

func TestInsertBulk_Rejects(t *testing.T) {
	sess := testutil.NewRecordingSession()
	b := New(Insert, "ks", "t", sess)
	ctx := context.Background()

	_, err := b.InsertBulk(ctx, []record{})
	assert.ErrorIs(t, err, ErrEmptyBulk)

	_, err = b.InsertBulk(ctx, record{Name: "x"})
	assert.ErrorIs(t, err, ErrNotSequence)

	_, err = b.InsertBulk(ctx, nil)
	assert.ErrorIs(t, err, ErrNotSequence)

	assert.Empty(t, sess.Calls())
}

func TestInsertBulk_FailureReportedForWholeBatch(t *testing.T) {
	cause := errors.New("Invalid JSON value")
	sess := testutil.NewRecordingSession(testutil.Response{Err: cause})

	_, err := New(Insert, "ks", "t", sess).InsertBulk(context.Background(), []any{map[string]any{"a": 1}, "not a record"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, sess.Calls(), 1)
}

func TestInsert_LeavesReceiverUntouched(t *testing.T) {
	sess := testutil.NewRecordingSession()
	b := New(Select, "ks", "t", sess).Clause("LIMIT 1")

	_, err := b.Insert(context.Background(), map[string]any{"id": 1})
	require.NoError(t, err)

	assert.Equal(t, Select, b.Operation())
	assert.Equal(t, "SELECT * FROM ks.t LIMIT 1;", b.Build())
}

func TestWithJSON_ReplacesEarlierPayload(t *testing.T) {
	b, err := New(Insert, "ks", "t", nil).WithJSON(map[string]any{"v": 1})
	require.NoError(t, err)
	b, err = b.WithJSON(map[string]any{"v": 2})
	require.NoError(t, err)

	assert.Equal(t, `INSERT INTO ks.t JSON '{"v":2}';`, b.Build())
}

func TestBuilders_ConcurrentOnSharedSession(t *testing.T) {
	sess := testutil.NewRecordingSession()
	base := New(Select, "ks", "t", sess)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := base.Eq("id", "1").Run(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stmts := sess.Statements()
	require.Len(t, stmts, 20)
	for _, s := range stmts {
		assert.Equal(t, "SELECT * FROM ks.t WHERE id = '1';", s)
	}
}
