package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdesk/stalesweep/internal/active_directory"
	"github.com/opsdesk/stalesweep/internal/export"
	"github.com/opsdesk/stalesweep/internal/ldapclient"
	"github.com/opsdesk/stalesweep/internal/remediate"
	"github.com/opsdesk/stalesweep/tools"
)

func newMoveCmd() *cobra.Command {
	var (
		discovery discoveryFlags
		target    string
		confirm   bool
		dryRun    bool
		outPath   string
	)

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Relocate inactive accounts to a target OU",
		Long: `Moves each matched account into the target OU. The target is validated
before anything is touched: an invalid target aborts the whole run with zero
mutations.`,
		Example: `  stalesweep move --days 180 --target "OU=Disabled,DC=corp,DC=example,DC=com" --confirm`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if target == "" {
				return fmt.Errorf("--target is required")
			}

			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			return runMove(client, &discovery, target, confirm, dryRun, outPath)
		},
	}

	discovery.register(cmd)
	cmd.Flags().StringVar(&target, "target", "", "OU to move matched accounts into (required)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Actually apply the moves")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the plan without mutating anything")
	cmd.Flags().StringVar(&outPath, "out", "", "Write per-account outcomes to this CSV path")

	return cmd
}

// runMove validates the target first: an invalid target aborts before any
// account is discovered or mutated, with zero outcomes recorded.
func runMove(client *ldapclient.Client, discovery *discoveryFlags, target string, confirm, dryRun bool, outPath string) error {
	if err := active_directory.ValidateContainer(client, target); err != nil {
		return err
	}

	matched, _, err := discovery.discover(client, time.Now())
	if err != nil {
		return err
	}

	if !confirm && !dryRun {
		tools.Log.Warn("No --confirm given, running as a dry run.")
		dryRun = true
	}

	exec := &remediate.Executor{
		Directory: ldapDirectory{client: client},
		Action:    remediate.ActionMove,
		TargetOU:  target,
		DryRun:    dryRun,
	}
	outcomes, summary := exec.Run(matched)
	summary.Log()

	export.PrintOutcomesTable(os.Stdout, outcomes)
	if outPath != "" {
		return export.WriteOutcomesCSV(outPath, outcomes)
	}

	return nil
}
