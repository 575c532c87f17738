package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/opsdesk/stalesweep/internal/active_directory"
	"github.com/opsdesk/stalesweep/internal/inactivity"
	"github.com/opsdesk/stalesweep/internal/ldapclient"
	"github.com/opsdesk/stalesweep/tools"
)

// discoveryFlags are shared by every command that starts from "find the
// stale accounts".
type discoveryFlags struct {
	scope       string
	kind        string
	days        int
	excludeOUs  []string
	enabledOnly bool
}

func (f *discoveryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.scope, "scope", "", "OU to search under (defaults to the base DN)")
	cmd.Flags().StringVar(&f.kind, "kind", "user", "Account kind: user, computer or all")
	cmd.Flags().IntVar(&f.days, "days", 90, "Inactivity threshold in days")
	cmd.Flags().StringSliceVar(&f.excludeOUs, "exclude-ou", nil, "OU substrings to skip (repeatable)")
	cmd.Flags().BoolVar(&f.enabledOnly, "enabled-only", false, "Skip accounts that are already disabled")
}

// discover lists accounts and applies the inactivity criterion. Accounts
// that never logged on always count as inactive.
func (f *discoveryFlags) discover(client *ldapclient.Client, now time.Time) ([]active_directory.Account, inactivity.Criterion, error) {
	kind, err := active_directory.ParseKind(f.kind)
	if err != nil {
		return nil, inactivity.Criterion{}, err
	}

	accounts, err := active_directory.ListAccounts(client, kind, f.scope, f.excludeOUs)
	if err != nil {
		return nil, inactivity.Criterion{}, err
	}

	criterion := inactivity.NewCriterion(kind, f.days, f.scope, now)
	criterion.EnabledOnly = f.enabledOnly
	matched := inactivity.Filter(accounts, criterion)

	tools.Log.Infof("Matched %d of %d accounts idle beyond %d days", len(matched), len(accounts), f.days)
	return matched, criterion, nil
}
