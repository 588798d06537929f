package cli

import (
	"github.com/spf13/cobra"

	"github.com/Twixan/scylladb-go/internal/session"
)

// ClusterOptions holds the connection flags shared by commands that talk
// to a cluster. Flags override values from --config.
type ClusterOptions struct {
	ConfigPath  string
	Hosts       []string
	Keyspace    string
	Consistency string
	Journal     string
}

func addClusterFlags(cmd *cobra.Command, opts *ClusterOptions) {
	def := session.DefaultConfig()
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "path to HCL cluster config")
	cmd.Flags().StringSliceVar(&opts.Hosts, "hosts", def.Hosts, "cluster contact points")
	cmd.Flags().StringVar(&opts.Keyspace, "keyspace", "", "default keyspace for the session")
	cmd.Flags().StringVar(&opts.Consistency, "consistency", def.Consistency, "consistency level")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record executed statements in this SQLite file")
}

// resolve builds the session config from --config and any flags the user
// set explicitly.
func (o *ClusterOptions) resolve(cmd *cobra.Command) (*session.Config, error) {
	cfg := session.DefaultConfig()
	if o.ConfigPath != "" {
		loaded, err := session.LoadConfig(o.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("hosts") {
		cfg.Hosts = o.Hosts
	}
	if flags.Changed("keyspace") {
		cfg.Keyspace = o.Keyspace
	}
	if flags.Changed("consistency") {
		cfg.Consistency = o.Consistency
	}
	if flags.Changed("journal") {
		cfg.Journal = o.Journal
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
