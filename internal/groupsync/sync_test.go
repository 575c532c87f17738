package groupsync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffMembers(t *testing.T) {
	current := []string{
		"CN=stay,OU=Sales,DC=corp,DC=example,DC=com",
		"CN=leave,OU=Sales,DC=corp,DC=example,DC=com",
	}
	desired := []string{
		"cn=stay,ou=sales,dc=corp,dc=example,dc=com", // same member, different casing
		"CN=join,OU=Sales,DC=corp,DC=example,DC=com",
	}

	toAdd, toRemove := DiffMembers(current, desired)

	assert.Equal(t, []string{"CN=join,OU=Sales,DC=corp,DC=example,DC=com"}, toAdd)
	assert.Equal(t, []string{"CN=leave,OU=Sales,DC=corp,DC=example,DC=com"}, toRemove)
}

func TestDiffMembers_AlreadyConverged(t *testing.T) {
	members := []string{"CN=a,DC=x", "CN=b,DC=x"}

	toAdd, toRemove := DiffMembers(members, members)

	assert.Empty(t, toAdd)
	assert.Empty(t, toRemove)
}

func TestDiffMembers_EmptyGroup(t *testing.T) {
	toAdd, toRemove := DiffMembers(nil, []string{"CN=a,DC=x"})

	assert.Equal(t, []string{"CN=a,DC=x"}, toAdd)
	assert.Empty(t, toRemove)
}

func writeTemplate(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "groups.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadTemplate(t *testing.T) {
	path := writeTemplate(t, `
groups:
  - cn: list-finance
    email: list-finance@corp.example.com
    ou: OU=Automated Groups,DC=corp,DC=example,DC=com
    label: Finance
    filter:
      department: Finance
`)

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	require.Len(t, tmpl.Groups, 1)
	assert.Equal(t, "list-finance", tmpl.Groups[0].CN)
	assert.Equal(t, "Finance", tmpl.Groups[0].Filter["department"])
}

func TestLoadTemplate_DerivesCNFromLabel(t *testing.T) {
	path := writeTemplate(t, `
groups:
  - email: list-human-resources@corp.example.com
    ou: OU=Automated Groups,DC=corp,DC=example,DC=com
    label: Human Resources
    filter:
      department: Human Resources
`)

	tmpl, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "list-human-resources", tmpl.Groups[0].CN)
}

func TestLoadTemplate_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty", "groups: []"},
		{"missing ou", "groups:\n  - cn: x\n    email: x@y.com\n    filter: {department: A}"},
		{"missing email", "groups:\n  - cn: x\n    ou: OU=G,DC=x\n    filter: {department: A}"},
		{"missing filter", "groups:\n  - cn: x\n    email: x@y.com\n    ou: OU=G,DC=x"},
		{"bad yaml", "groups: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTemplate(writeTemplate(t, tt.body))
			assert.Error(t, err)
		})
	}
}
