package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

func identityFor(t *testing.T, raw string) *domain.Identity {
	t.Helper()
	role, _ := domain.ParseRole(raw)
	return &domain.Identity{UserID: "u-" + raw, Role: role, Authenticated: true}
}

func TestGuard_LegacyScenarios(t *testing.T) {
	g := NewGuard(DefaultPolicy())

	tests := []struct {
		name     string
		identity *domain.Identity
		view     domain.View
		outcome  domain.AccessOutcome
		redirect string
	}{
		{"engineering opening financial goes home", identityFor(t, "Engenharia"), domain.ViewFinancial, domain.OutcomeMisrouted, "/engenharia"},
		{"purchasing opening admin lands on overview", identityFor(t, "Compras"), domain.ViewAdmin, domain.OutcomeMisrouted, "/"},
		{"anonymous opening admin goes to login", nil, domain.ViewAdmin, domain.OutcomeUnauthenticated, "/login"},
		{"manager opening hr is elevated", identityFor(t, "manager"), domain.ViewHR, domain.OutcomeAuthorizedElevated, ""},
		{"Gerente opening accounting is elevated", identityFor(t, "Gerente"), domain.ViewAccounting, domain.OutcomeAuthorizedElevated, ""},
		{"RH opening svc is direct", identityFor(t, "RH"), domain.ViewSVC, domain.OutcomeAuthorizedDirect, ""},
		{"finance opening overview is direct", identityFor(t, "Finanaceiro"), domain.ViewOverview, domain.OutcomeAuthorizedDirect, ""},
		{"commercial opening manager goes home", identityFor(t, "Comercial"), domain.ViewManager, domain.OutcomeMisrouted, "/comercial"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := g.AuthorizeView(tt.identity, tt.view)
			assert.Equal(t, tt.outcome, d.Outcome)
			assert.Equal(t, tt.redirect, d.RedirectTo)
			assert.False(t, d.Fallback)
		})
	}
}

func TestGuard_ElevatedRolesOpenEveryView(t *testing.T) {
	p := DefaultPolicy()
	g := NewGuard(p)

	for _, raw := range []string{"admin", "manager", "Manager", "Gerente"} {
		id := identityFor(t, raw)
		for _, r := range p.Routes() {
			d := g.AuthorizeView(id, r.View)
			assert.True(t, d.Allowed(), "%s should open %s", raw, r.View)
			assert.Empty(t, d.RedirectTo)
		}
	}
}

func TestGuard_RestrictedRolesStayOnTheirViews(t *testing.T) {
	p := DefaultPolicy()
	g := NewGuard(p)

	for _, role := range domain.Roles() {
		if p.Elevated(role) {
			continue
		}
		id := &domain.Identity{UserID: "u", Role: role, Authenticated: true}
		home, ok := p.HomePath(role)
		require.True(t, ok)

		for _, r := range p.Routes() {
			d := g.AuthorizeView(id, r.View)
			if r.RequiredRole == domain.RoleUnknown || r.RequiredRole == role {
				assert.Equal(t, domain.OutcomeAuthorizedDirect, d.Outcome, "%s on %s", role, r.View)
				continue
			}
			assert.Equal(t, domain.OutcomeMisrouted, d.Outcome, "%s on %s", role, r.View)
			assert.Equal(t, home, d.RedirectTo)
			assert.NotEqual(t, r.Path, d.RedirectTo)
		}
	}
}

func TestGuard_AnonymousAlwaysGoesToLogin(t *testing.T) {
	p := DefaultPolicy()
	g := NewGuard(p)

	unauthenticated := []*domain.Identity{
		nil,
		{UserID: "u", Role: domain.RoleAdmin, Authenticated: false},
	}
	for _, id := range unauthenticated {
		for _, r := range p.Routes() {
			d := g.AuthorizeView(id, r.View)
			assert.Equal(t, domain.OutcomeUnauthenticated, d.Outcome)
			assert.Equal(t, LoginPath, d.RedirectTo)
		}
	}
}

func TestGuard_UnknownRoleFallsBack(t *testing.T) {
	g := NewGuard(DefaultPolicy())
	id := identityFor(t, "Estagiario")
	require.Equal(t, domain.RoleUnknown, id.Role)

	d := g.AuthorizeView(id, domain.ViewAdmin)
	assert.Equal(t, domain.OutcomeMisrouted, d.Outcome)
	assert.Equal(t, FallbackPath, d.RedirectTo)
	assert.True(t, d.Fallback)

	d = g.AuthorizeView(id, domain.ViewOverview)
	assert.True(t, d.Allowed())
}

func TestGuard_CaseSensitiveRoles(t *testing.T) {
	g := NewGuard(DefaultPolicy())

	d := g.AuthorizeView(identityFor(t, "Admin"), domain.ViewAdmin)
	assert.Equal(t, domain.OutcomeMisrouted, d.Outcome)
	assert.Equal(t, FallbackPath, d.RedirectTo)
}

func TestGuard_Deterministic(t *testing.T) {
	g := NewGuard(DefaultPolicy())
	id := identityFor(t, "Engenharia")

	first := g.AuthorizeView(id, domain.ViewCommercial)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, g.AuthorizeView(id, domain.ViewCommercial))
	}
}

func TestGuard_UncataloguedViewGoesToLogin(t *testing.T) {
	g := NewGuard(DefaultPolicy())

	for _, raw := range []string{"admin", "RH"} {
		d := g.AuthorizeView(identityFor(t, raw), domain.View("payroll"))
		assert.False(t, d.Allowed(), raw)
		assert.Equal(t, LoginPath, d.RedirectTo, raw)
	}
	d := g.AuthorizeView(nil, domain.View("payroll"))
	assert.Equal(t, LoginPath, d.RedirectTo)
}
