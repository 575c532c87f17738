package remediate

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/stalesweep/tools"
)

// ResetEntry is one row of a bulk password-reset input file.
type ResetEntry struct {
	SAMAccountName string
	NewPassword    string
}

// PasswordDirectory resets one account's password by identifier.
type PasswordDirectory interface {
	ResetPassword(sam, newPassword string) error
}

// LoadResetEntries parses a reset CSV. The header row is required and must
// name sAMAccountName and newPassword columns. Any malformed row fails the
// whole load so nothing is mutated from a half-read file.
func LoadResetEntries(path string) ([]ResetEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open reset file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse reset file %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("reset file %s is empty", path)
	}

	samIdx, pwIdx := -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "samaccountname":
			samIdx = i
		case "newpassword":
			pwIdx = i
		}
	}
	if samIdx < 0 || pwIdx < 0 {
		return nil, fmt.Errorf("reset file %s must have sAMAccountName and newPassword columns", path)
	}

	var entries []ResetEntry
	for i, record := range records[1:] {
		sam := strings.TrimSpace(record[samIdx])
		if sam == "" {
			return nil, fmt.Errorf("reset file %s: row %d has an empty sAMAccountName", path, i+2)
		}
		entries = append(entries, ResetEntry{
			SAMAccountName: sam,
			NewPassword:    record[pwIdx],
		})
	}

	return entries, nil
}

// RunPasswordResets applies the entries sequentially with the same
// partial-failure semantics as the account executor.
func RunPasswordResets(dir PasswordDirectory, entries []ResetEntry, dryRun bool) ([]Outcome, Summary) {
	runID := uuid.NewString()
	start := time.Now()

	outcomes := make([]Outcome, 0, len(entries))
	for _, entry := range entries {
		outcome := Outcome{
			Identifier: entry.SAMAccountName,
			Action:     ActionResetPassword,
		}

		if dryRun {
			tools.Log.Infof("[DRY] Would reset password for %s", entry.SAMAccountName)
			outcome.Status = StatusSkipped
			outcomes = append(outcomes, outcome)
			continue
		}

		if err := dir.ResetPassword(entry.SAMAccountName, entry.NewPassword); err != nil {
			tools.Log.WithError(err).Errorf("Failed to reset password for %s", entry.SAMAccountName)
			outcome.Status = StatusFailed
			outcome.Err = err.Error()
		} else {
			outcome.Status = StatusSucceeded
		}
		outcomes = append(outcomes, outcome)
	}

	summary := summarize(runID, ActionResetPassword, outcomes, time.Since(start))
	return outcomes, summary
}
