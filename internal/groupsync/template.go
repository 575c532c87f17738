package groupsync

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opsdesk/stalesweep/tools"
)

// GroupSpec describes one managed group: where it lives, its mail identity,
// and the membership filter (LDAP attribute equality matches) that defines
// who belongs in it.
type GroupSpec struct {
	CN     string            `yaml:"cn"`
	Email  string            `yaml:"email"`
	OU     string            `yaml:"ou"`
	Label  string            `yaml:"label"`
	Filter map[string]string `yaml:"filter"`
}

// Template is an operator-authored list of managed groups.
type Template struct {
	Groups []GroupSpec `yaml:"groups"`
}

// LoadTemplate reads and validates a group template file. Validation fails
// fast so a half-valid template never reconciles anything.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read template: %w", err)
	}

	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("cannot parse template %s: %w", path, err)
	}
	if len(tmpl.Groups) == 0 {
		return nil, fmt.Errorf("template %s defines no groups", path)
	}

	for i := range tmpl.Groups {
		spec := &tmpl.Groups[i]
		if spec.Label == "" {
			spec.Label = spec.CN
		}
		if spec.CN == "" && spec.Label != "" {
			spec.CN = "list-" + tools.Slugify(spec.Label)
		}
		if spec.CN == "" {
			return nil, fmt.Errorf("template %s: group %d has neither cn nor label", path, i)
		}
		if spec.OU == "" {
			return nil, fmt.Errorf("template %s: group %s has no ou", path, spec.CN)
		}
		if spec.Email == "" {
			return nil, fmt.Errorf("template %s: group %s has no email", path, spec.CN)
		}
		if len(spec.Filter) == 0 {
			return nil, fmt.Errorf("template %s: group %s has no membership filter", path, spec.CN)
		}
	}

	return &tmpl, nil
}
