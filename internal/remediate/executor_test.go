package remediate

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/stalesweep/internal/active_directory"
)

type fakeDirectory struct {
	disabled  []string
	moved     map[string]string
	failOnDN  map[string]error
	callCount int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{moved: map[string]string{}, failOnDN: map[string]error{}}
}

func (f *fakeDirectory) Disable(dn string) error {
	f.callCount++
	if err := f.failOnDN[dn]; err != nil {
		return err
	}
	f.disabled = append(f.disabled, dn)
	return nil
}

func (f *fakeDirectory) Move(dn, targetOU string) error {
	f.callCount++
	if err := f.failOnDN[dn]; err != nil {
		return err
	}
	f.moved[dn] = targetOU
	return nil
}

func accounts(n int) []active_directory.Account {
	out := make([]active_directory.Account, n)
	for i := range out {
		sam := string(rune('a' + i))
		out[i] = active_directory.Account{
			SAMAccountName: sam,
			DN:             "CN=" + sam + ",OU=Stale,DC=corp,DC=example,DC=com",
		}
	}
	return out
}

func TestExecutor_DisableAll(t *testing.T) {
	dir := newFakeDirectory()
	exec := &Executor{Directory: dir, Action: ActionDisable}

	outcomes, summary := exec.Run(accounts(3))

	require.Len(t, outcomes, 3)
	for _, o := range outcomes {
		assert.Equal(t, StatusSucceeded, o.Status)
		assert.Equal(t, ActionDisable, o.Action)
	}
	assert.Equal(t, 3, summary.Matched)
	assert.Equal(t, 3, summary.Succeeded)
	assert.Equal(t, 0, summary.Failed)
	assert.NotEmpty(t, summary.RunID)
}

func TestExecutor_PartialFailureContinues(t *testing.T) {
	accts := accounts(5)
	dir := newFakeDirectory()
	dir.failOnDN[accts[2].DN] = errors.New("insufficient access rights")
	exec := &Executor{Directory: dir, Action: ActionDisable}

	outcomes, summary := exec.Run(accts)

	require.Len(t, outcomes, 5)
	assert.Equal(t, 4, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, StatusFailed, outcomes[2].Status)
	assert.Contains(t, outcomes[2].Err, "insufficient access rights")
	// all five were attempted despite the mid-batch failure
	assert.Equal(t, 5, dir.callCount)
}

func TestExecutor_Move(t *testing.T) {
	dir := newFakeDirectory()
	exec := &Executor{
		Directory: dir,
		Action:    ActionMove,
		TargetOU:  "OU=Disabled,DC=corp,DC=example,DC=com",
	}

	outcomes, _ := exec.Run(accounts(2))

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.Equal(t, StatusSucceeded, o.Status)
		assert.Equal(t, "OU=Disabled,DC=corp,DC=example,DC=com", dir.moved[o.DN])
	}
}

func TestExecutor_DryRunTouchesNothing(t *testing.T) {
	dir := newFakeDirectory()
	exec := &Executor{Directory: dir, Action: ActionDisable, DryRun: true}

	outcomes, summary := exec.Run(accounts(4))

	require.Len(t, outcomes, 4)
	for _, o := range outcomes {
		assert.Equal(t, StatusSkipped, o.Status)
	}
	assert.Equal(t, 4, summary.Skipped)
	assert.Equal(t, 0, dir.callCount)
}

type fakePasswordDirectory struct {
	resets  map[string]string
	failSAM string
}

func (f *fakePasswordDirectory) ResetPassword(sam, newPassword string) error {
	if sam == f.failSAM {
		return errors.New("account not found")
	}
	if f.resets == nil {
		f.resets = map[string]string{}
	}
	f.resets[sam] = newPassword
	return nil
}

func TestLoadResetEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resets.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"sAMAccountName,newPassword\njdoe,Spring2025!\nasmith,Summer2025!\n"), 0o600))

	entries, err := LoadResetEntries(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "jdoe", entries[0].SAMAccountName)
	assert.Equal(t, "Spring2025!", entries[0].NewPassword)
}

func TestLoadResetEntries_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("user,pass\njdoe,x\n"), 0o600))

	_, err := LoadResetEntries(path)
	assert.Error(t, err)
}

func TestLoadResetEntries_EmptyIdentifierFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("sAMAccountName,newPassword\n,x\n"), 0o600))

	_, err := LoadResetEntries(path)
	assert.Error(t, err)
}

func TestRunPasswordResets_PartialFailure(t *testing.T) {
	dir := &fakePasswordDirectory{failSAM: "ghost"}
	entries := []ResetEntry{
		{SAMAccountName: "jdoe", NewPassword: "a"},
		{SAMAccountName: "ghost", NewPassword: "b"},
		{SAMAccountName: "asmith", NewPassword: "c"},
	}

	outcomes, summary := RunPasswordResets(dir, entries, false)

	require.Len(t, outcomes, 3)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, StatusFailed, outcomes[1].Status)
	assert.Len(t, dir.resets, 2)
}

func TestRunPasswordResets_DryRun(t *testing.T) {
	dir := &fakePasswordDirectory{}
	entries := []ResetEntry{{SAMAccountName: "jdoe", NewPassword: "a"}}

	outcomes, summary := RunPasswordResets(dir, entries, true)

	require.Len(t, outcomes, 1)
	assert.Equal(t, StatusSkipped, outcomes[0].Status)
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, dir.resets)
}
