package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdesk/stalesweep/internal/export"
	"github.com/opsdesk/stalesweep/internal/report"
)

func newReportCmd() *cobra.Command {
	var (
		discovery discoveryFlags
		outPath   string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "List inactive accounts without touching anything",
		Example: `  stalesweep report --days 90
  stalesweep report --kind computer --scope "OU=Servers,DC=corp,DC=example,DC=com"
  stalesweep report --days 180 --out reports/stale.csv`,
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

			rows := report.Project(matched, now)

			if output == "json" {
				if err := export.PrintJSON(os.Stdout, rows); err != nil {
					return err
				}
			} else {
				export.PrintReportTable(os.Stdout, rows)
			}

			// Export failures come after the console output so the report is
			// never lost to a bad path.
			if outPath != "" {
				if err := export.WriteReportCSV(outPath, rows); err != nil {
					return err
				}
			}

			return nil
		},
	}

	discovery.register(cmd)
	cmd.Flags().StringVar(&outPath, "out", "", "Write the report to this CSV path")
	cmd.Flags().StringVar(&output, "output", "table", "Console format: table or json")

	return cmd
}
