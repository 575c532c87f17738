package inactivity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/stalesweep/internal/active_directory"
)

func tp(t time.Time) *time.Time { return &t }

func TestFilter_CutoffBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewCriterion(active_directory.KindAny, 90, "", now)

	accounts := []active_directory.Account{
		{SAMAccountName: "old", LastActivity: tp(now.AddDate(0, 0, -100))},
		{SAMAccountName: "fresh", LastActivity: tp(now.AddDate(0, 0, -10))},
		{SAMAccountName: "exactly-at-cutoff", LastActivity: tp(c.Cutoff)},
		{SAMAccountName: "just-past-cutoff", LastActivity: tp(c.Cutoff.Add(-time.Second))},
	}

	matched := Filter(accounts, c)

	var names []string
	for _, a := range matched {
		names = append(names, a.SAMAccountName)
	}
	assert.Equal(t, []string{"old", "just-past-cutoff"}, names)
}

func TestFilter_NeverLoggedOnAlwaysIncluded(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	never := active_directory.Account{SAMAccountName: "never", LastActivity: nil}

	for _, days := range []int{0, 1, 90, 10000} {
		c := NewCriterion(active_directory.KindAny, days, "", now)
		matched := Filter([]active_directory.Account{never}, c)
		assert.Len(t, matched, 1, "threshold %d days", days)
	}
}

func TestFilter_SpecScenario(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	c := NewCriterion(active_directory.KindAny, 90, "", now)

	accounts := []active_directory.Account{
		{SAMAccountName: "A", LastActivity: tp(now.AddDate(0, 0, -100))},
		{SAMAccountName: "B", LastActivity: tp(now.AddDate(0, 0, -10))},
		{SAMAccountName: "C", LastActivity: nil},
	}

	matched := Filter(accounts, c)

	var names []string
	for _, a := range matched {
		names = append(names, a.SAMAccountName)
	}
	assert.Equal(t, []string{"A", "C"}, names)
}

func TestFilter_KindAndScope(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	accounts := []active_directory.Account{
		{SAMAccountName: "u1", Kind: active_directory.KindUser,
			DN: "CN=u1,OU=Sales,DC=corp,DC=example,DC=com"},
		{SAMAccountName: "c1", Kind: active_directory.KindComputer,
			DN: "CN=c1,OU=Servers,DC=corp,DC=example,DC=com"},
	}

	users := Filter(accounts, NewCriterion(active_directory.KindUser, 30, "", now))
	assert.Len(t, users, 1)
	assert.Equal(t, "u1", users[0].SAMAccountName)

	scoped := Filter(accounts, NewCriterion(active_directory.KindAny, 30,
		"ou=servers,dc=corp,dc=example,dc=com", now))
	assert.Len(t, scoped, 1)
	assert.Equal(t, "c1", scoped[0].SAMAccountName)
}

func TestFilter_ScopeRequiresComponentBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	accounts := []active_directory.Account{
		{SAMAccountName: "inside", DN: "CN=a,OU=Sales,DC=corp,DC=example,DC=com"},
		{SAMAccountName: "lookalike", DN: "CN=b,OU=PreSales,DC=corp,DC=example,DC=com"},
	}

	scoped := Filter(accounts, NewCriterion(active_directory.KindAny, 30,
		"OU=Sales,DC=corp,DC=example,DC=com", now))

	require.Len(t, scoped, 1)
	assert.Equal(t, "inside", scoped[0].SAMAccountName)
}

func TestFilter_ScopeMatchesTheScopeItself(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	accounts := []active_directory.Account{
		{SAMAccountName: "root", DN: "OU=Sales,DC=corp,DC=example,DC=com"},
	}

	scoped := Filter(accounts, NewCriterion(active_directory.KindAny, 30,
		"ou=sales,dc=corp,dc=example,dc=com", now))

	assert.Len(t, scoped, 1)
}

func TestFilter_EnabledOnly(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	accounts := []active_directory.Account{
		{SAMAccountName: "live", Enabled: true},
		{SAMAccountName: "dead", Enabled: false},
	}

	c := NewCriterion(active_directory.KindAny, 90, "", now)
	assert.Len(t, Filter(accounts, c), 2)

	c.EnabledOnly = true
	matched := Filter(accounts, c)
	require.Len(t, matched, 1)
	assert.Equal(t, "live", matched[0].SAMAccountName)
}
