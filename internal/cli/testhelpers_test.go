package cli

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/Twixan/scylladb-go/internal/client"
	"github.com/Twixan/scylladb-go/internal/session"
	"github.com/Twixan/scylladb-go/internal/testutil"
)

const usersPlan = `name: users
statements:
  - name: adults
    op: select
    keyspace: app
    table: users
    columns: [name]
    where:
      - {op: gte, column: age, value: "18"}
  - name: rename
    op: update
    keyspace: app
    table: users
    set:
      - {column: name, value: Jane}
    where:
      - {op: eq, column: id, value: "7"}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// fakeCluster records the config each command resolved and serves every
// connection from one recording session.
type fakeCluster struct {
	sess *testutil.RecordingSession
	cfg  *session.Config
}

func (f *fakeCluster) connect(_ context.Context, cfg *session.Config, _ *slog.Logger) (*client.Client, error) {
	f.cfg = cfg
	return client.NewWithSession(f.sess), nil
}

func runCommand(t *testing.T, newCmd func(*RootOptions) *cobra.Command, opts *RootOptions, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := newCmd(opts)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
