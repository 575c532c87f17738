package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdesk/stalesweep/internal/active_directory"
	"github.com/opsdesk/stalesweep/internal/export"
	"github.com/opsdesk/stalesweep/internal/gsuspend"
	"github.com/opsdesk/stalesweep/internal/remediate"
	"github.com/opsdesk/stalesweep/tools"
)

func newDisableCmd() *cobra.Command {
	var (
		discovery    discoveryFlags
		confirm      bool
		dryRun       bool
		outPath      string
		mirrorGoogle bool
	)

	cmd := &cobra.Command{
		Use:   "disable",
		Short: "Disable every account idle beyond the threshold",
		Long: `Disables each matched account sequentially. One failure never aborts the
batch; failures are recorded per account and summarized. Without --confirm
the command runs as a dry run.`,
		Example: `  stalesweep disable --days 180 --dry-run
  stalesweep disable --days 180 --confirm --out outcomes.csv
  stalesweep disable --days 365 --confirm --mirror-google`,
		RunE: func(_ *cobra.Command, _ []string) error {
			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			now := time.Now()
			matched, _, err := discovery.discover(client, now)
			if err != nil {
				return err
			}

			if !confirm && !dryRun {
				tools.Log.Warn("No --confirm given, running as a dry run.")
				dryRun = true
			}

			exec := &remediate.Executor{
				Directory: ldapDirectory{client: client},
				Action:    remediate.ActionDisable,
				DryRun:    dryRun,
			}
			outcomes, summary := exec.Run(matched)
			summary.Log()

			if mirrorGoogle && !dryRun {
				mirrorDisables(matched, outcomes)
			}

			export.PrintOutcomesTable(os.Stdout, outcomes)
			if outPath != "" {
				if err := export.WriteOutcomesCSV(outPath, outcomes); err != nil {
					return err
				}
			}

			return nil
		},
	}

	discovery.register(cmd)
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Actually apply the disables")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the plan without mutating anything")
	cmd.Flags().StringVar(&outPath, "out", "", "Write per-account outcomes to this CSV path")
	cmd.Flags().BoolVar(&mirrorGoogle, "mirror-google", false, "Also suspend the matching Google Workspace users")

	return cmd
}

// mirrorDisables suspends the Google Workspace users behind successfully
// disabled AD user accounts. Mirror failures are per-account and never fatal.
func mirrorDisables(matched []active_directory.Account, outcomes []remediate.Outcome) {
	emailByID := make(map[string]string, len(matched))
	for _, account := range matched {
		if account.Kind == active_directory.KindUser && account.Email != "" {
			emailByID[account.SAMAccountName] = account.Email
		}
	}

	var emails []string
	for _, o := range outcomes {
		if o.Status != remediate.StatusSucceeded {
			continue
		}
		if email, ok := emailByID[o.Identifier]; ok {
			emails = append(emails, email)
		}
	}
	if len(emails) == 0 {
		tools.Log.Debug("No mailbox users to mirror to Google")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	svc, err := gsuspend.NewDirectoryService(ctx)
	if err != nil {
		tools.Log.WithError(err).Error("Failed to create Google Directory client, skipping mirror")
		return
	}

	result := gsuspend.SuspendUsers(ctx, svc, emails, false)
	tools.Log.Infof("Google mirror: suspended=%d failed=%d skipped=%d",
		result.Suspended, result.Failed, result.Skipped)
}
