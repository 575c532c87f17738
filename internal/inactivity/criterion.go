package inactivity

import (
	"time"

	"github.com/opsdesk/stalesweep/internal/active_directory"
)

// Criterion captures one run's staleness policy. Built once, never mutated.
type Criterion struct {
	Kind        active_directory.Kind
	Cutoff      time.Time
	Scope       string // optional OU DN; empty means the whole search base
	Threshold   int    // days, kept for reporting
	EnabledOnly bool   // skip accounts that are already disabled
}

func NewCriterion(kind active_directory.Kind, thresholdDays int, scope string, now time.Time) Criterion {
	return Criterion{
		Kind:      kind,
		Cutoff:    now.AddDate(0, 0, -thresholdDays),
		Scope:     scope,
		Threshold: thresholdDays,
	}
}
