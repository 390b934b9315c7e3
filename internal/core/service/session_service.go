package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

const (
	defaultSessionTTL  = 24 * time.Hour
	defaultAuthTimeout = 5 * time.Second
)

// SessionConfig tunes a SessionService.
type SessionConfig struct {
	TTL         time.Duration
	AuthTimeout time.Duration
}

// SessionService implements ports.SessionService on top of an Authenticator,
// a SessionStore, and signed tokens that reference stored sessions.
type SessionService struct {
	auth        ports.Authenticator
	store       ports.SessionStore
	tokens      *TokenIssuer
	audit       ports.AccessRecorder
	ttl         time.Duration
	authTimeout time.Duration
	log         zerolog.Logger
	now         func() time.Time
}

// NewSessionService wires the session layer. audit may be nil.
func NewSessionService(
	auth ports.Authenticator,
	store ports.SessionStore,
	tokens *TokenIssuer,
	audit ports.AccessRecorder,
	cfg SessionConfig,
	log zerolog.Logger,
) *SessionService {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultSessionTTL
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = defaultAuthTimeout
	}
	return &SessionService{
		auth:        auth,
		store:       store,
		tokens:      tokens,
		audit:       audit,
		ttl:         cfg.TTL,
		authTimeout: cfg.AuthTimeout,
		log:         log.With().Str("component", "session").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Login authenticates creds and opens a session. Failures return a
// *domain.AuthError and leave no session behind.
func (s *SessionService) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, &domain.AuthError{Reason: domain.ReasonInvalidCredentials, Err: domain.ErrInvalidCredentials}
	}

	authCtx, cancel := context.WithTimeout(ctx, s.authTimeout)
	defer cancel()

	principal, err := s.auth.Authenticate(authCtx, creds)
	if err != nil {
		authErr := classifyAuthError(err)
		s.log.Info().Err(err).Str("reason", authErr.Reason.String()).Msg("login rejected")
		s.record(domain.AccessEvent{Kind: domain.EventLoginFail})
		return nil, authErr
	}

	role, ok := domain.ParseRole(principal.Role)
	if !ok {
		s.log.Warn().
			Str("user_id", principal.UserID).
			Str("raw_role", principal.Role).
			Msg("login with unrecognised role")
	}

	now := s.now()
	session := &domain.Session{
		ID: uuid.NewString(),
		Identity: domain.Identity{
			UserID:        principal.UserID,
			Username:      principal.Username,
			Role:          role,
			Authenticated: true,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	token, err := s.tokens.Issue(session)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session, s.ttl); err != nil {
		return nil, &domain.AuthError{Reason: domain.ReasonUnavailable, Err: fmt.Errorf("save session: %w", err)}
	}
	session.Token = token

	s.record(domain.AccessEvent{Kind: domain.EventLogin, UserID: principal.UserID, Role: role})
	return session, nil
}

// Identity restores the identity behind token.
func (s *SessionService) Identity(ctx context.Context, token string) (*domain.Identity, bool) {
	if token == "" {
		return nil, false
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("session token rejected")
		return nil, false
	}

	session, err := s.store.Find(ctx, claims.ID)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSessionNotFound):
		return nil, false
	case errors.Is(err, domain.ErrSessionCorrupt):
		s.log.Warn().Err(err).Str("session_id", claims.ID).Msg("discarding corrupt session")
		s.discard(ctx, claims.ID)
		return nil, false
	default:
		s.log.Warn().Err(err).Str("session_id", claims.ID).Msg("session store lookup failed")
		return nil, false
	}

	if session.Identity.UserID != claims.Subject || !session.Identity.Authenticated {
		s.log.Warn().Str("session_id", claims.ID).Msg("session does not match its token")
		s.discard(ctx, claims.ID)
		return nil, false
	}
	if session.Expired(s.now()) {
		s.discard(ctx, claims.ID)
		return nil, false
	}

	id := session.Identity
	return &id, true
}

// Logout ends the session behind token. Calling it without a session, or
// twice, is a no-op.
func (s *SessionService) Logout(ctx context.Context, token string) error {
	return s.end(ctx, token, domain.EventLogout)
}

// Expire ends the session after a downstream call reported it expired.
func (s *SessionService) Expire(ctx context.Context, token string) {
	if err := s.end(ctx, token, domain.EventExpired); err != nil {
		s.log.Warn().Err(err).Msg("expire session")
	}
}

func (s *SessionService) end(ctx context.Context, token string, kind domain.AccessEventKind) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.ParseUnverifiedExpiry(token)
	if err != nil {
		return nil
	}
	if err := s.store.Delete(ctx, claims.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.record(domain.AccessEvent{Kind: kind, UserID: claims.Subject, Role: domain.Role(claims.Role)})
	return nil
}

func (s *SessionService) discard(ctx context.Context, id string) {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("session_id", id).Msg("delete session")
	}
}

func (s *SessionService) record(e domain.AccessEvent) {
	if s.audit == nil {
		return
	}
	e.At = s.now()
	s.audit.Record(e)
}

// classifyAuthError maps an Authenticator failure onto the two reasons a
// visitor can see. Unknown user and wrong password are indistinguishable.
func classifyAuthError(err error) *domain.AuthError {
	var ae *domain.AuthError
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound) {
		return &domain.AuthError{Reason: domain.ReasonInvalidCredentials, Err: err}
	}
	return &domain.AuthError{Reason: domain.ReasonUnavailable, Err: err}
}
