package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/aussiebroadwan/rosterra/internal/client/mirror"
	"github.com/aussiebroadwan/rosterra/internal/client/poller"
	"github.com/aussiebroadwan/rosterra/internal/client/syncer"
	"github.com/aussiebroadwan/rosterra/pkg/rostersdk"
	"github.com/aussiebroadwan/rosterra/pkg/slogx"
	"github.com/spf13/cobra"
)

// cli holds what the sub-commands share. The syncer is built once flags are
// parsed.
type cli struct {
	apiURL       string
	mirrorPath   string
	pollInterval time.Duration
	logLevel     string

	mirror *mirror.Mirror
	sync   *syncer.Syncer
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "rosterractl",
		Short:         "Command line client for rosterra",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.mirror != nil {
				return c.mirror.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.apiURL, "api", envOr("ROSTERRA_API_URL", "http://localhost:5000/api"), "API base URL")
	root.PersistentFlags().StringVar(&c.mirrorPath, "mirror", envOr("ROSTERRA_MIRROR", defaultMirrorPath()), "local mirror file")
	root.PersistentFlags().DurationVar(&c.pollInterval, "interval", envDuration("ROSTERRA_POLL_INTERVAL", poller.DefaultInterval), "pending-count poll interval")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "log level")

	root.AddCommand(
		c.signupCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.rosterCmd(),
		c.profilesCmd(),
		c.adminCmd(),
	)
	return root
}

func (c *cli) open(cmd *cobra.Command) error {
	logger := slogx.New(slogx.Config{
		Service: "rosterractl",
		Env:     "cli",
		Level:   c.logLevel,
		Format:  "text",
		Output:  cmd.ErrOrStderr(),
	})
	cmd.SetContext(slogx.WithContext(cmd.Context(), logger))

	m, err := mirror.Open(cmd.Context(), c.mirrorPath)
	if err != nil {
		return err
	}
	c.mirror = m
	c.sync = syncer.New(rostersdk.NewSDKClient(c.apiURL), m)
	return nil
}

func defaultMirrorPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "rosterra-mirror.db"
	}
	return filepath.Join(home, ".rosterra", "mirror.db")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return def
}
