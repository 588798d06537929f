package cli

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Twixan/scylladb-go/internal/journal"
	"github.com/Twixan/scylladb-go/internal/session"
	"github.com/Twixan/scylladb-go/internal/testutil"
)

func seedJournal(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	st, err := journal.Open(path)
	require.NoError(t, err)
	defer st.Close()

	inner := testutil.NewRecordingSession(
		testutil.Response{},
		testutil.Response{Err: errors.New("unavailable")},
	).WithTraceGenerator(session.NewSequenceGenerator("trace-1", "trace-2"))
	sess := journal.Wrap(inner, st, nil)

	ctx := context.Background()
	_, err = sess.Execute(ctx, "SELECT * FROM app.users;")
	require.NoError(t, err)
	_, err = sess.Execute(ctx, "DELETE FROM app.users WHERE id = '7';")
	require.Error(t, err)
	return path
}

func TestHistory_Text(t *testing.T) {
	path := seedJournal(t)

	out, _, err := runCommand(t, NewHistoryCommand, &RootOptions{Format: "text"}, "--journal", path)
	require.NoError(t, err)

	assert.Contains(t, out, "#2 FAILED trace-2 DELETE FROM app.users WHERE id = '7';")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "#1 ok trace-1 SELECT * FROM app.users;")
	assert.Less(t, strings.Index(out, "#2"), strings.Index(out, "#1"), "newest first")
}

func TestHistory_JSONLimitAndTrace(t *testing.T) {
	path := seedJournal(t)

	out, _, err := runCommand(t, NewHistoryCommand, &RootOptions{Format: "json"}, "--journal", path, "-n", "1")
	require.NoError(t, err)

	var resp struct {
		Data []journal.Entry `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "trace-2", resp.Data[0].TraceID)

	out, _, err = runCommand(t, NewHistoryCommand, &RootOptions{Format: "json"}, "--journal", path, "--trace", "trace-1")
	require.NoError(t, err)
	resp.Data = nil
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 1)
	assert.True(t, resp.Data[0].OK)
}

func TestHistory_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	out, _, err := runCommand(t, NewHistoryCommand, &RootOptions{Format: "text"}, "--journal", path)
	require.NoError(t, err)
	assert.Equal(t, "No statements recorded.\n", out)
}

func TestHistory_MissingJournalFlag(t *testing.T) {
	_, _, err := runCommand(t, NewHistoryCommand, &RootOptions{Format: "text"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestHistory_UnopenableJournal(t *testing.T) {
	_, _, err := runCommand(t, NewHistoryCommand, &RootOptions{Format: "text"}, "--journal", "/nonexistent/path/journal.db")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open journal")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
