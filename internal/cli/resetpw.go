package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/opsdesk/stalesweep/internal/export"
	"github.com/opsdesk/stalesweep/internal/remediate"
	"github.com/opsdesk/stalesweep/tools"
)

func newResetPasswordsCmd() *cobra.Command {
	var (
		filePath string
		confirm  bool
		dryRun   bool
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "reset-passwords",
		Short: "Bulk-reset account passwords from a CSV file",
		Long: `Reads a CSV with sAMAccountName and newPassword columns and resets each
account's password sequentially. A malformed file fails before anything is
mutated; a failed row is recorded and the rest still run.`,
		Example: `  stalesweep reset-passwords --file resets.csv --dry-run
  stalesweep reset-passwords --file resets.csv --confirm --out outcomes.csv`,
		RunE: func(_ *cobra.Command, _ []string) error {
			entries, err := remediate.LoadResetEntries(filePath)
			if err != nil {
				return err
			}

			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			if !confirm && !dryRun {
				tools.Log.Warn("No --confirm given, running as a dry run.")
				dryRun = true
			}

			outcomes, summary := remediate.RunPasswordResets(ldapDirectory{client: client}, entries, dryRun)
			summary.Log()

			export.PrintOutcomesTable(os.Stdout, outcomes)
			if outPath != "" {
				if err := export.WriteOutcomesCSV(outPath, outcomes); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "CSV file with sAMAccountName,newPassword rows (required)")
	cmd.Flags().BoolVar(&confirm, "confirm", false, "Actually apply the resets")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the plan without mutating anything")
	cmd.Flags().StringVar(&outPath, "out", "", "Write per-account outcomes to this CSV path")
	cmd.MarkFlagRequired("file")

	return cmd
}
