package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/opsdesk/stalesweep/internal/remediate"
	"github.com/opsdesk/stalesweep/internal/report"
	"github.com/opsdesk/stalesweep/tools"
)

// ErrExportPathInvalid marks an output path whose parent directory cannot be
// created. Fatal for the export step only; callers fall back to console
// output.
var ErrExportPathInvalid = errors.New("export path invalid")

var reportHeader = []string{"AccountType", "Identifier", "LastActivity", "IdleDays", "CreatedAt", "Container"}

// WriteReportCSV writes report rows to path, creating missing parent
// directories. The header row is always written, even for an empty report.
func WriteReportCSV(path string, rows []report.Row) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, reportHeader)
	for _, row := range rows {
		records = append(records, []string{
			row.AccountType,
			row.Identifier,
			row.LastActivity,
			row.IdleDaysString(),
			row.CreatedAt,
			row.Container,
		})
	}
	return writeCSV(path, records)
}

var outcomeHeader = []string{"Identifier", "DN", "Action", "Status", "Error"}

// WriteOutcomesCSV exports per-account remediation outcomes.
func WriteOutcomesCSV(path string, outcomes []remediate.Outcome) error {
	records := make([][]string, 0, len(outcomes)+1)
	records = append(records, outcomeHeader)
	for _, o := range outcomes {
		records = append(records, []string{o.Identifier, o.DN, string(o.Action), string(o.Status), o.Err})
	}
	return writeCSV(path, records)
}

func writeCSV(path string, records [][]string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: cannot create %s: %v", ErrExportPathInvalid, dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: cannot create %s: %v", ErrExportPathInvalid, path, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	tools.Log.WithFields(map[string]interface{}{
		"path": path,
		"rows": len(records) - 1,
	}).Info("CSV export written")

	return nil
}
