package domain

import "time"

// Identity is what the guard knows about the current visitor.
type Identity struct {
	UserID        string `json:"user_id"`
	Username      string `json:"username,omitempty"`
	Role          Role   `json:"role"`
	Authenticated bool   `json:"authenticated"`
}

// Credentials are the login form fields.
type Credentials struct {
	Email    string
	Password string
}

// Principal is the answer of an Authenticator for a successful login. Role
// carries the raw string as stored by the directory; the session layer
// canonicalizes it.
type Principal struct {
	UserID   string
	Username string
	Role     string
}

// Session is a server-side login record. The token handed to the browser
// only references it by ID; Token is set on the value returned by a login
// and is never persisted.
type Session struct {
	ID        string    `json:"id"`
	Token     string    `json:"-"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer usable at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
