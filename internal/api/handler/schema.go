package handler

import (
	"time"

	"github.com/novavp/dashboard-gateway/internal/core/access"
	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Identity  *domain.Identity `json:"identity"`
	Home      string           `json:"home"`
}

type meResponse struct {
	Identity        *domain.Identity `json:"identity"`
	IsAuthenticated bool             `json:"is_authenticated"`
	Home            string           `json:"home,omitempty"`
	Navigation      []navLink        `json:"navigation,omitempty"`
}

type loginViewResponse struct {
	View            domain.View `json:"view"`
	IsAuthenticated bool        `json:"is_authenticated"`
	Home            string      `json:"home,omitempty"`
}

type navLink struct {
	View  domain.View `json:"view"`
	Title string      `json:"title"`
	Path  string      `json:"path"`
}

type card struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type viewResponse struct {
	View       domain.View           `json:"view"`
	Title      string                `json:"title"`
	Path       string                `json:"path"`
	Identity   *domain.Identity      `json:"identity"`
	Navigation []navLink             `json:"navigation"`
	Cards      []card                `json:"cards"`
	Sales      *ports.PersonalKPIs   `json:"sales,omitempty"`
	Aggregate  *ports.AggregateSales `json:"aggregate,omitempty"`
}

type saleRequest struct {
	Sale          *float64 `json:"sale" validate:"required"`
	TotalExpenses float64  `json:"totalExpenses" validate:"gte=0"`
	NetProfit     float64  `json:"netProfit"`
	Revenue       float64  `json:"revenue" validate:"gte=0"`
}

type saleHistoryResponse struct {
	History domain.SaleHistory `json:"history"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

type usersResponse struct {
	Users []*domain.User `json:"users"`
}

func navigation(routes []access.Route) []navLink {
	out := make([]navLink, 0, len(routes))
	for _, r := range routes {
		out = append(out, navLink{View: r.View, Title: r.Title, Path: r.Path})
	}
	return out
}
