package report

import (
	"strconv"
	"time"

	"github.com/opsdesk/stalesweep/internal/active_directory"
)

// NeverMarker is what a never-logged-on account shows in the IdleDays
// column.
const NeverMarker = "never"

const timeLayout = "2006-01-02 15:04:05"

// Row is the flat, read-only projection exported to CSV and rendered as a
// table. Created during projection, consumed by a sink, then discarded.
type Row struct {
	AccountType  string   `json:"accountType"`
	Identifier   string   `json:"identifier"`
	LastActivity string   `json:"lastActivity,omitempty"`
	IdleDays     int      `json:"idleDays"`
	Never        bool     `json:"never,omitempty"`
	CreatedAt    string   `json:"createdAt"`
	Container    string   `json:"container"`
	Enabled      bool     `json:"enabled"`
	UACFlags     []string `json:"uacFlags,omitempty"`
}

// IdleDaysString renders the idle-days column, using the never marker for
// accounts with no recorded activity.
func (r Row) IdleDaysString() string {
	if r.Never {
		return NeverMarker
	}
	return strconv.Itoa(r.IdleDays)
}

// Project maps filtered accounts onto report rows. Pure and total: every
// account yields exactly one row.
func Project(accounts []active_directory.Account, now time.Time) []Row {
	rows := make([]Row, 0, len(accounts))
	for _, account := range accounts {
		row := Row{
			AccountType: string(account.Kind),
			Identifier:  account.SAMAccountName,
			Container:   account.Container,
			Enabled:     account.Enabled,
			UACFlags:    account.UACFlags,
		}
		if !account.WhenCreated.IsZero() {
			row.CreatedAt = account.WhenCreated.Format(timeLayout)
		}
		if account.LastActivity == nil {
			row.Never = true
		} else {
			row.LastActivity = account.LastActivity.Format(timeLayout)
			row.IdleDays = int(now.Sub(*account.LastActivity).Hours() / 24)
		}
		rows = append(rows, row)
	}
	return rows
}
