package remediate

import (
	"time"

	"github.com/opsdesk/stalesweep/tools"
)

type Action string

const (
	ActionDisable       Action = "disable"
	ActionMove          Action = "move"
	ActionResetPassword Action = "reset-password"
)

type Status string

const (
	StatusSucceeded Status = "Succeeded"
	StatusFailed    Status = "Failed"
	StatusSkipped   Status = "Skipped"
)

// Outcome records the result of one attempted mutation. One outcome per
// account that passed the filter, never more.
type Outcome struct {
	Identifier string `json:"identifier"`
	DN         string `json:"dn"`
	Action     Action `json:"action"`
	Status     Status `json:"status"`
	Err        string `json:"error,omitempty"`
}

// Summary aggregates a run's outcomes for the final operator-facing line.
type Summary struct {
	RunID     string        `json:"runId"`
	Action    Action        `json:"action"`
	Matched   int           `json:"matched"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	Duration  time.Duration `json:"duration"`
}

func summarize(runID string, action Action, outcomes []Outcome, duration time.Duration) Summary {
	s := Summary{RunID: runID, Action: action, Matched: len(outcomes), Duration: duration}
	for _, o := range outcomes {
		switch o.Status {
		case StatusSucceeded:
			s.Succeeded++
		case StatusFailed:
			s.Failed++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

// Log prints the always-present final summary line.
func (s Summary) Log() {
	tools.Log.Infof("[run:%s] %s complete: matched=%d succeeded=%d failed=%d skipped=%d in %s",
		s.RunID, s.Action, s.Matched, s.Succeeded, s.Failed, s.Skipped, s.Duration.Round(time.Millisecond))
}
