package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/opsdesk/stalesweep/internal/remediate"
	"github.com/opsdesk/stalesweep/internal/report"
)

// PrintReportTable renders rows as an aligned console table.
func PrintReportTable(w io.Writer, rows []report.Row) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(reportHeader, "\t"))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			row.AccountType, row.Identifier, row.LastActivity,
			row.IdleDaysString(), row.CreatedAt, row.Container)
	}
	tw.Flush()
}

// PrintOutcomesTable renders remediation outcomes as an aligned console table.
func PrintOutcomesTable(w io.Writer, outcomes []remediate.Outcome) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(outcomeHeader, "\t"))
	for _, o := range outcomes {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", o.Identifier, o.DN, o.Action, o.Status, o.Err)
	}
	tw.Flush()
}

// PrintJSON writes v as indented JSON for machine consumption.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
