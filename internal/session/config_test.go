package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Hosts)
	assert.Equal(t, "QUORUM", cfg.Consistency)
}

func TestParseConfig(t *testing.T) {
	src := `
hosts       = ["10.0.0.1", "10.0.0.2"]
keyspace    = "app"
consistency = "LOCAL_QUORUM"
timeout     = "3s"
username    = "scylla"
password    = "secret"
journal     = "/tmp/journal.db"
`
	cfg, err := ParseConfig(src)
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.Hosts)
	assert.Equal(t, "app", cfg.Keyspace)
	assert.Equal(t, "LOCAL_QUORUM", cfg.Consistency)
	assert.Equal(t, "3s", cfg.Timeout)
	assert.Equal(t, "5s", cfg.ConnectTimeout) // default kept
	assert.Equal(t, "/tmp/journal.db", cfg.Journal)

	cluster, err := cfg.cluster()
	require.NoError(t, err)
	assert.Equal(t, gocql.LocalQuorum, cluster.Consistency)
	assert.Equal(t, 3*time.Second, cluster.Timeout)
	assert.Equal(t, 5*time.Second, cluster.ConnectTimeout)
	assert.Equal(t, "app", cluster.Keyspace)
	auth, ok := cluster.Authenticator.(gocql.PasswordAuthenticator)
	require.True(t, ok)
	assert.Equal(t, "scylla", auth.Username)
}

func TestParseConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"bad hcl", `hosts = [`, "decode config"},
		{"bad consistency", `consistency = "MOST"`, "consistency"},
		{"bad timeout", `timeout = "soon"`, "timeout"},
		{"negative timeout", `timeout = "-1s"`, "timeout"},
		{"password without user", `password = "x"`, "without username"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig(tc.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluster.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`keyspace = "ks"`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ks", cfg.Keyspace)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestConfig_ValidateNoHosts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Hosts = nil
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one host")
}
