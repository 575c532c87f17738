package remediate

import (
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/stalesweep/internal/active_directory"
	"github.com/opsdesk/stalesweep/tools"
)

// Directory is the mutation surface the executor needs from the directory
// service. The production implementation issues LDAP modify requests; tests
// substitute fakes.
type Directory interface {
	Disable(dn string) error
	Move(dn, targetOU string) error
}

// Executor applies one action to each matched account, strictly
// sequentially. One attempt per account; a failure is recorded and the loop
// continues. For moves, the target OU must be validated before Run is
// called.
type Executor struct {
	Directory Directory
	Action    Action
	TargetOU  string
	DryRun    bool
}

// Run walks the accounts and returns one outcome per account plus the run
// summary.
func (e *Executor) Run(accounts []active_directory.Account) ([]Outcome, Summary) {
	runID := uuid.NewString()
	start := time.Now()

	outcomes := make([]Outcome, 0, len(accounts))
	for _, account := range accounts {
		outcomes = append(outcomes, e.apply(account))
	}

	summary := summarize(runID, e.Action, outcomes, time.Since(start))
	return outcomes, summary
}

func (e *Executor) apply(account active_directory.Account) Outcome {
	outcome := Outcome{
		Identifier: account.SAMAccountName,
		DN:         account.DN,
		Action:     e.Action,
	}

	if e.DryRun {
		tools.Log.Infof("[DRY] Would %s %s", e.Action, account.DN)
		outcome.Status = StatusSkipped
		return outcome
	}

	tools.Log.WithFields(map[string]interface{}{
		"sam":    account.SAMAccountName,
		"action": string(e.Action),
	}).Debug("Attempting remediation")

	var err error
	switch e.Action {
	case ActionDisable:
		err = e.Directory.Disable(account.DN)
	case ActionMove:
		err = e.Directory.Move(account.DN, e.TargetOU)
	default:
		tools.Log.Warnf("Unknown remediation action %q, skipping %s", e.Action, account.DN)
		outcome.Status = StatusSkipped
		return outcome
	}

	if err != nil {
		tools.Log.WithError(err).Errorf("Failed to %s %s", e.Action, account.DN)
		outcome.Status = StatusFailed
		outcome.Err = err.Error()
		return outcome
	}

	outcome.Status = StatusSucceeded
	return outcome
}
