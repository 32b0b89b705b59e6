package rbac

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed default_policy.yaml
var defaultPolicy []byte

type RolePolicy struct {
	Inherits    []string            `yaml:"inherits"`
	Permissions map[string][]string `yaml:"permissions"`
}

type Policy struct {
	Roles map[string]RolePolicy `yaml:"roles"`
}

// DefaultPolicy returns the policy shipped with the binary.
func DefaultPolicy() (Policy, error) {
	return ParsePolicy(defaultPolicy)
}

// LoadPolicy reads a YAML policy file, or the built-in policy when path is
// empty.
func LoadPolicy(path string) (Policy, error) {
	if path == "" {
		return DefaultPolicy()
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read rbac policy: %w", err)
	}
	return ParsePolicy(raw)
}

func ParsePolicy(raw []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Policy{}, fmt.Errorf("parse rbac policy: %w", err)
	}
	if len(p.Roles) == 0 {
		return Policy{}, fmt.Errorf("rbac policy defines no roles")
	}
	for name, role := range p.Roles {
		for _, parent := range role.Inherits {
			if _, ok := p.Roles[parent]; !ok {
				return Policy{}, fmt.Errorf("role %q inherits unknown role %q", name, parent)
			}
		}
	}
	return p, nil
}

// RoleNames returns the defined roles in a stable order.
func (p Policy) RoleNames() []string {
	names := make([]string, 0, len(p.Roles))
	for name := range p.Roles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
