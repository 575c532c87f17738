package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsdesk/stalesweep/internal/groupsync"
	"github.com/opsdesk/stalesweep/tools"
)

func newSyncGroupsCmd() *cobra.Command {
	var (
		templatePath string
		dryRun       bool
	)

	cmd := &cobra.Command{
		Use:   "sync-groups",
		Short: "Reconcile group memberships from a YAML template",
		Long: `Applies a group template: each listed group is created if missing and its
member set is reconciled against the accounts matching the group's filter.
Per-member errors are logged and never abort the batch.`,
		Example: `  stalesweep sync-groups --template groups.yaml --dry-run
  stalesweep sync-groups --template groups.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			tmpl, err := groupsync.LoadTemplate(templatePath)
			if err != nil {
				return err
			}

			client, err := connect()
			if err != nil {
				return err
			}
			defer client.Close()

			results := groupsync.Apply(client, tmpl, dryRun)

			failed := 0
			for _, result := range results {
				if result.Err != nil {
					failed++
					tools.Log.WithError(result.Err).Errorf("Group %s failed", result.Group)
				}
			}
			if failed == len(results) {
				return fmt.Errorf("all %d groups failed to reconcile", failed)
			}

			tools.Log.Infof("Reconciled %d groups (%d failed)", len(results)-failed, failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "", "YAML group template (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the plan without mutating anything")
	cmd.MarkFlagRequired("template")

	return cmd
}
