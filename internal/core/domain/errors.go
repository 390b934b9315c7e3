package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthUnavailable    = errors.New("authentication unavailable")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidUser        = errors.New("invalid user")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionCorrupt     = errors.New("session record corrupt")
	// ErrSessionExpired is returned by downstream calls that discover the
	// session is no longer honoured; the session middleware reacts to it by
	// ending the session.
	ErrSessionExpired = errors.New("session expired")
	ErrForbidden      = errors.New("access forbidden")
)

// AuthReason classifies a failed login.
type AuthReason int

const (
	ReasonInvalidCredentials AuthReason = iota + 1
	ReasonUnavailable
)

func (r AuthReason) String() string {
	switch r {
	case ReasonInvalidCredentials:
		return "invalid_credentials"
	case ReasonUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// AuthError is returned by login. Reason decides what the visitor sees; Err
// keeps the underlying cause for logs.
type AuthError struct {
	Reason AuthReason
	Err    error
}

func (e *AuthError) Error() string {
	msg := ErrInvalidCredentials.Error()
	if e.Reason == ReasonUnavailable {
		msg = ErrAuthUnavailable.Error()
	}
	if e.Err != nil && !errors.Is(e.Err, ErrInvalidCredentials) {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AuthError) Unwrap() error { return e.Err }

// Is lets callers match on the reason with errors.Is(err, ErrInvalidCredentials)
// or errors.Is(err, ErrAuthUnavailable).
func (e *AuthError) Is(target error) bool {
	switch target {
	case ErrInvalidCredentials:
		return e.Reason == ReasonInvalidCredentials
	case ErrAuthUnavailable:
		return e.Reason == ReasonUnavailable
	}
	return false
}
