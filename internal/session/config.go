package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gocql/gocql"
	"github.com/hashicorp/hcl"
)

// Config describes how to reach the cluster.
//
// It can be loaded from an HCL file:
//
//	hosts       = ["10.0.0.1", "10.0.0.2"]
//	keyspace    = "app"
//	consistency = "LOCAL_QUORUM"
//	timeout     = "5s"
//	journal     = "/var/lib/scyllaqb/journal.db"
type Config struct {
	Hosts          []string `hcl:"hosts"`
	Keyspace       string   `hcl:"keyspace"`
	Consistency    string   `hcl:"consistency"`
	Timeout        string   `hcl:"timeout"`
	ConnectTimeout string   `hcl:"connect_timeout"`
	Username       string   `hcl:"username"`
	Password       string   `hcl:"password"`

	// Journal is an optional sqlite path; when set every executed
	// statement is recorded there.
	Journal string `hcl:"journal"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Hosts:          []string{"127.0.0.1"},
		Consistency:    "QUORUM",
		Timeout:        "10s",
		ConnectTimeout: "5s",
	}
}

// ParseConfig decodes HCL source on top of DefaultConfig.
func ParseConfig(src string) (*Config, error) {
	cfg := DefaultConfig()
	if err := hcl.Decode(cfg, src); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads and decodes an HCL config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(string(data))
}

// Validate checks that the config can produce a cluster.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Hosts) == 0 {
		errs = append(errs, errors.New("config: at least one host is required"))
	}
	if _, err := c.consistency(); err != nil {
		errs = append(errs, fmt.Errorf("config: consistency: %w", err))
	}
	if _, err := parseDuration(c.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("config: timeout: %w", err))
	}
	if _, err := parseDuration(c.ConnectTimeout); err != nil {
		errs = append(errs, fmt.Errorf("config: connect_timeout: %w", err))
	}
	if c.Password != "" && c.Username == "" {
		errs = append(errs, errors.New("config: password set without username"))
	}
	return errors.Join(errs...)
}

func (c *Config) consistency() (gocql.Consistency, error) {
	if c.Consistency == "" {
		return gocql.Quorum, nil
	}
	return gocql.ParseConsistencyWrapper(c.Consistency)
}

// cluster builds the gocql cluster config. Validate must have passed.
func (c *Config) cluster() (*gocql.ClusterConfig, error) {
	cons, err := c.consistency()
	if err != nil {
		return nil, err
	}
	timeout, err := parseDuration(c.Timeout)
	if err != nil {
		return nil, err
	}
	connectTimeout, err := parseDuration(c.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	cluster := gocql.NewCluster(c.Hosts...)
	cluster.Keyspace = c.Keyspace
	cluster.Consistency = cons
	if timeout > 0 {
		cluster.Timeout = timeout
	}
	if connectTimeout > 0 {
		cluster.ConnectTimeout = connectTimeout
	}
	if c.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: c.Username,
			Password: c.Password,
		}
	}
	return cluster, nil
}

// parseDuration treats the empty string as "driver default".
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return d, nil
}
