package access

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

// policyFile is the YAML shape of a policy override:
//
//	roles:
//	  Gerente:
//	    home: manager
//	  purchasing:
//	    home: purchasing
//	    elevated: false
//
// Role keys accept canonical names and legacy aliases. Entries override the
// built-in rule field by field; roles not listed keep their defaults.
type policyFile struct {
	Roles map[string]roleOverride `yaml:"roles"`
}

type roleOverride struct {
	Home     string `yaml:"home"`
	Elevated *bool  `yaml:"elevated"`
}

// LoadPolicy reads a YAML override from path and merges it over the
// built-in policy.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy file: %w", err)
	}
	p, err := ParsePolicy(data)
	if err != nil {
		return nil, fmt.Errorf("policy file %s: %w", path, err)
	}
	return p, nil
}

// ParsePolicy decodes a YAML override. Unknown fields are rejected.
func ParsePolicy(data []byte) (*Policy, error) {
	var f policyFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode policy: %w", err)
	}

	routes := DefaultRoutes()
	known := make(map[domain.View]struct{}, len(routes))
	for _, r := range routes {
		known[r.View] = struct{}{}
	}

	rules := DefaultRules()
	seen := make(map[domain.Role]string, len(f.Roles))
	for _, raw := range sortedKeys(f.Roles) {
		o := f.Roles[raw]
		role, ok := domain.ParseRole(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidPolicy, raw)
		}
		// Aliases of one role must not race each other for its rule.
		if prev, dup := seen[role]; dup {
			return nil, fmt.Errorf("%w: roles %q and %q both configure %s", ErrInvalidPolicy, prev, raw, role)
		}
		seen[role] = raw
		rule := rules[role]
		if o.Home != "" {
			view := domain.View(o.Home)
			if _, ok := known[view]; !ok {
				return nil, fmt.Errorf("%w: role %s: unknown view %q", ErrInvalidPolicy, role, o.Home)
			}
			rule.Home = view
		}
		if o.Elevated != nil {
			rule.Elevated = *o.Elevated
		}
		rules[role] = rule
	}

	return NewPolicy(routes, rules)
}

func sortedKeys(m map[string]roleOverride) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
