// Package access decides which dashboard views an identity may open.
//
// A Policy holds the view catalogue and the role table (home view and
// elevation per canonical role). A Guard evaluates navigations against it.
// Neither performs I/O once built.
package access

import (
	"errors"
	"fmt"
	"strings"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"
	// FallbackPath is used when a misrouted role has no home entry.
	FallbackPath = "/"
)

// ErrInvalidPolicy wraps every Validate failure.
var ErrInvalidPolicy = errors.New("invalid access policy")

// Route is one catalogued view. An empty RequiredRole means any
// authenticated identity may open it.
type Route struct {
	View         domain.View
	Title        string
	Path         string
	Aliases      []string
	RequiredRole domain.Role
}

// Paths returns the primary path followed by its aliases.
func (r Route) Paths() []string {
	return append([]string{r.Path}, r.Aliases...)
}

// RoleRule is the per-role policy entry.
type RoleRule struct {
	Home     domain.View
	Elevated bool
}

// Policy is immutable after construction.
type Policy struct {
	routes []Route
	byView map[domain.View]Route
	rules  map[domain.Role]RoleRule
}

// DefaultRoutes is the built-in view catalogue.
func DefaultRoutes() []Route {
	return []Route{
		{View: domain.ViewOverview, Title: "Overview", Path: "/", Aliases: []string{"/overview"}},
		{View: domain.ViewAdmin, Title: "Admin", Path: "/admin", RequiredRole: domain.RoleAdmin},
		{View: domain.ViewManager, Title: "Manager", Path: "/manager", Aliases: []string{"/gerente"}, RequiredRole: domain.RoleManager},
		{View: domain.ViewFinancial, Title: "Financial", Path: "/finanaceiro", Aliases: []string{"/financial"}, RequiredRole: domain.RoleFinance},
		{View: domain.ViewAccounting, Title: "Accounting", Path: "/accounting", RequiredRole: domain.RoleAdmin},
		{View: domain.ViewEngineering, Title: "Engineering", Path: "/engenharia", Aliases: []string{"/engineering"}, RequiredRole: domain.RoleEngineering},
		{View: domain.ViewHR, Title: "HR", Path: "/rh", RequiredRole: domain.RoleHR},
		{View: domain.ViewSVC, Title: "SVC", Path: "/svc", RequiredRole: domain.RoleHR},
		{View: domain.ViewCommercial, Title: "Commercial", Path: "/comercial", Aliases: []string{"/commercial"}, RequiredRole: domain.RoleCommercial},
		{View: domain.ViewPurchasing, Title: "Purchasing", Path: "/compras", RequiredRole: domain.RolePurchasing},
	}
}

// DefaultRules is the built-in role table.
func DefaultRules() map[domain.Role]RoleRule {
	return map[domain.Role]RoleRule{
		domain.RoleAdmin:       {Home: domain.ViewAdmin, Elevated: true},
		domain.RoleManager:     {Home: domain.ViewManager, Elevated: true},
		domain.RoleFinance:     {Home: domain.ViewFinancial},
		domain.RoleEngineering: {Home: domain.ViewEngineering},
		domain.RoleHR:          {Home: domain.ViewHR},
		domain.RoleCommercial:  {Home: domain.ViewCommercial},
		domain.RolePurchasing:  {Home: domain.ViewOverview},
	}
}

// DefaultPolicy returns the built-in policy. It panics if the built-in
// tables do not validate, which only a code change can cause.
func DefaultPolicy() *Policy {
	p, err := NewPolicy(DefaultRoutes(), DefaultRules())
	if err != nil {
		panic(fmt.Sprintf("access: built-in policy: %v", err))
	}
	return p
}

// NewPolicy builds and validates a policy.
func NewPolicy(routes []Route, rules map[domain.Role]RoleRule) (*Policy, error) {
	p := &Policy{
		routes: make([]Route, len(routes)),
		byView: make(map[domain.View]Route, len(routes)),
		rules:  make(map[domain.Role]RoleRule, len(rules)),
	}
	copy(p.routes, routes)
	for _, r := range routes {
		p.byView[r.View] = r
	}
	for role, rule := range rules {
		p.rules[role] = rule
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks that the role table is total over the canonical roles,
// that every home view exists and is open to its role, and that the
// catalogue has no duplicate views or paths.
func (p *Policy) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidPolicy}, args...)...))
	}

	views := make(map[domain.View]struct{}, len(p.routes))
	paths := make(map[string]domain.View)
	for _, r := range p.routes {
		if r.View == "" {
			fail("route %q has no view name", r.Path)
		}
		if _, dup := views[r.View]; dup {
			fail("view %q declared twice", r.View)
		}
		views[r.View] = struct{}{}
		if r.RequiredRole != domain.RoleUnknown && !r.RequiredRole.Valid() {
			fail("view %q requires unknown role %q", r.View, string(r.RequiredRole))
		}
		for _, path := range r.Paths() {
			if !strings.HasPrefix(path, "/") {
				fail("view %q path %q must start with /", r.View, path)
			}
			if path == LoginPath {
				fail("view %q cannot use the login path", r.View)
			}
			if other, dup := paths[path]; dup {
				fail("path %q used by %q and %q", path, other, r.View)
			}
			paths[path] = r.View
		}
	}

	for role := range p.rules {
		if !role.Valid() {
			fail("rule for unknown role %q", string(role))
		}
	}
	for _, role := range domain.Roles() {
		rule, ok := p.rules[role]
		if !ok {
			fail("role %s has no entry", role)
			continue
		}
		home, ok := p.byView[rule.Home]
		if !ok {
			fail("role %s home view %q is not catalogued", role, rule.Home)
			continue
		}
		if !p.opens(role, home) {
			fail("role %s cannot open its home view %q", role, rule.Home)
		}
	}

	return errors.Join(errs...)
}

// Routes returns the catalogue in declaration order.
func (p *Policy) Routes() []Route {
	out := make([]Route, len(p.routes))
	copy(out, p.routes)
	return out
}

// Route looks up a catalogued view.
func (p *Policy) Route(v domain.View) (Route, bool) {
	r, ok := p.byView[v]
	return r, ok
}

// Elevated reports whether role may open every view.
func (p *Policy) Elevated(role domain.Role) bool {
	rule, ok := p.rules[role]
	return ok && rule.Elevated
}

// HomePath returns the primary path of role's home view.
func (p *Policy) HomePath(role domain.Role) (string, bool) {
	rule, ok := p.rules[role]
	if !ok {
		return "", false
	}
	home, ok := p.byView[rule.Home]
	if !ok {
		return "", false
	}
	return home.Path, true
}

// AllowedViews lists the catalogued views role may open without being
// redirected, in catalogue order.
func (p *Policy) AllowedViews(role domain.Role) []Route {
	var out []Route
	for _, r := range p.routes {
		if p.opens(role, r) {
			out = append(out, r)
		}
	}
	return out
}

func (p *Policy) opens(role domain.Role, r Route) bool {
	return r.RequiredRole == domain.RoleUnknown || p.Elevated(role) || r.RequiredRole == role
}
