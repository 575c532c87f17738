package inactivity

import (
	"strings"

	"github.com/opsdesk/stalesweep/internal/active_directory"
)

// Filter returns the accounts considered inactive under the criterion. An
// account matches when its last activity predates the cutoff. Accounts that
// never logged on are always included, regardless of cutoff.
func Filter(accounts []active_directory.Account, c Criterion) []active_directory.Account {
	var matched []active_directory.Account
	for _, account := range accounts {
		if c.Kind != active_directory.KindAny && account.Kind != c.Kind {
			continue
		}
		if c.EnabledOnly && !account.Enabled {
			continue
		}
		if c.Scope != "" && !inScope(account.DN, c.Scope) {
			continue
		}
		if account.LastActivity != nil && !account.LastActivity.Before(c.Cutoff) {
			continue
		}
		matched = append(matched, account)
	}
	return matched
}

// inScope requires a component boundary before the scope suffix so that
// "ou=sales,dc=x" never matches "cn=a,otherou=sales,dc=x".
func inScope(dn, scope string) bool {
	dn = active_directory.NormalizeDN(dn)
	scope = active_directory.NormalizeDN(scope)
	return dn == scope || strings.HasSuffix(dn, ","+scope)
}
