package access

import "github.com/novavp/dashboard-gateway/internal/core/domain"

// Decision is the outcome of one navigation attempt. RedirectTo is empty
// when the navigation is allowed.
type Decision struct {
	Outcome    domain.AccessOutcome
	RedirectTo string
	// Fallback is set when a misrouted role had no home entry and was sent
	// to FallbackPath.
	Fallback bool
}

// Allowed reports whether the requested view should render.
func (d Decision) Allowed() bool {
	return d.Outcome == domain.OutcomeAuthorizedDirect || d.Outcome == domain.OutcomeAuthorizedElevated
}

// Guard evaluates navigations. It is safe for concurrent use.
type Guard struct {
	policy *Policy
}

func NewGuard(policy *Policy) *Guard {
	return &Guard{policy: policy}
}

// Authorize decides whether identity may open a view that requires role
// required (RoleUnknown meaning unrestricted). The checks run in order:
// authentication, unrestricted view, elevated role, exact role match.
// Anything else is redirected to the role's home view.
func (g *Guard) Authorize(identity *domain.Identity, required domain.Role) Decision {
	if identity == nil || !identity.Authenticated {
		return Decision{Outcome: domain.OutcomeUnauthenticated, RedirectTo: LoginPath}
	}
	if required == domain.RoleUnknown {
		return Decision{Outcome: domain.OutcomeAuthorizedDirect}
	}
	if g.policy.Elevated(identity.Role) {
		return Decision{Outcome: domain.OutcomeAuthorizedElevated}
	}
	if identity.Role == required {
		return Decision{Outcome: domain.OutcomeAuthorizedDirect}
	}

	home, ok := g.policy.HomePath(identity.Role)
	if !ok {
		return Decision{Outcome: domain.OutcomeMisrouted, RedirectTo: FallbackPath, Fallback: true}
	}
	return Decision{Outcome: domain.OutcomeMisrouted, RedirectTo: home}
}

// AuthorizeView is Authorize for a catalogued view. A view missing from the
// catalogue is never opened; the visitor is sent to the login page.
func (g *Guard) AuthorizeView(identity *domain.Identity, view domain.View) Decision {
	r, ok := g.policy.Route(view)
	if !ok {
		return Decision{Outcome: domain.OutcomeMisrouted, RedirectTo: LoginPath}
	}
	return g.Authorize(identity, r.RequiredRole)
}
