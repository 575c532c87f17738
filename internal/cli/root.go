// Package cli wires the stalesweep command tree.
package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdesk/stalesweep/internal/config"
	"github.com/opsdesk/stalesweep/internal/ldapclient"
	"github.com/opsdesk/stalesweep/tools"
)

var (
	envFile string
	timeout time.Duration
	verbose bool
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		tools.Log.Error(err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stalesweep",
		Short: "Find and remediate inactive Active Directory accounts",
		Long: `stalesweep finds user and computer accounts whose last activity is older
than a threshold and reports, disables, or relocates them. It also carries
the sibling chores of the same shape: bulk password resets from CSV,
template-driven group membership, and a connectivity check.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			tools.InitLogger(verbose)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&envFile, "env", ".env", "Env file with LDAP connection settings")
	pf.DurationVar(&timeout, "timeout", 30*time.Second, "Directory operation timeout")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newReportCmd())
	cmd.AddCommand(newDisableCmd())
	cmd.AddCommand(newMoveCmd())
	cmd.AddCommand(newResetPasswordsCmd())
	cmd.AddCommand(newSyncGroupsCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}

func connect() (*ldapclient.Client, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = timeout
	return ldapclient.Connect(cfg)
}
