package domain

import "time"

// AccessOutcome is the result of a guard decision.
type AccessOutcome string

const (
	OutcomeUnauthenticated    AccessOutcome = "unauthenticated"
	OutcomeAuthorizedDirect   AccessOutcome = "authorized_direct"
	OutcomeAuthorizedElevated AccessOutcome = "authorized_elevated"
	OutcomeMisrouted          AccessOutcome = "misrouted"
)

// AccessEventKind distinguishes audit records.
type AccessEventKind string

const (
	EventNavigation AccessEventKind = "navigation"
	EventLogin      AccessEventKind = "login"
	EventLoginFail  AccessEventKind = "login_failed"
	EventLogout     AccessEventKind = "logout"
	EventExpired    AccessEventKind = "session_expired"
)

// AccessEvent is one audit record of the access-control layer.
type AccessEvent struct {
	Kind       AccessEventKind `json:"kind"`
	UserID     string          `json:"user_id,omitempty"`
	Role       Role            `json:"role,omitempty"`
	View       View            `json:"view,omitempty"`
	Path       string          `json:"path,omitempty"`
	Outcome    AccessOutcome   `json:"outcome,omitempty"`
	RedirectTo string          `json:"redirect_to,omitempty"`
	RemoteIP   string          `json:"remote_ip,omitempty"`
	At         time.Time       `json:"at"`
}
