package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

type stubAuthenticator struct {
	fn func(ctx context.Context, creds domain.Credentials) (*domain.Principal, error)
}

func (s *stubAuthenticator) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Principal, error) {
	return s.fn(ctx, creds)
}

func acceptAs(role string) *stubAuthenticator {
	return &stubAuthenticator{fn: func(_ context.Context, creds domain.Credentials) (*domain.Principal, error) {
		return &domain.Principal{UserID: "user-1", Username: creds.Email, Role: role}, nil
	}}
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]domain.Session
	findErr  error
	saveErr  error
	deleted  []string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]domain.Session)}
}

func (m *memSessionStore) Save(_ context.Context, s *domain.Session, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.sessions[s.ID] = *s
	return nil
}

func (m *memSessionStore) Find(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

func (m *memSessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type recordingAudit struct {
	mu     sync.Mutex
	events []domain.AccessEvent
}

func (r *recordingAudit) Record(e domain.AccessEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingAudit) kinds() []domain.AccessEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AccessEventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestSessionService(auth *stubAuthenticator, store *memSessionStore, audit *recordingAudit) *SessionService {
	var recorder ports.AccessRecorder
	if audit != nil {
		recorder = audit
	}
	return NewSessionService(auth, store, NewTokenIssuer("test-secret", "dashboard"), recorder,
		SessionConfig{TTL: time.Hour, AuthTimeout: 50 * time.Millisecond}, zerolog.Nop())
}

var validCreds = domain.Credentials{Email: "ana@novavp.com", Password: "pw"}

func TestSessionService_LoginAndIdentity(t *testing.T) {
	store := newMemSessionStore()
	audit := &recordingAudit{}
	svc := newTestSessionService(acceptAs("Engenharia"), store, audit)

	session, err := svc.Login(context.Background(), validCreds)
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	assert.Equal(t, domain.RoleEngineering, session.Identity.Role)
	assert.True(t, session.Identity.Authenticated)

	id, ok := svc.Identity(context.Background(), session.Token)
	require.True(t, ok)
	assert.Equal(t, "user-1", id.UserID)
	assert.Equal(t, domain.RoleEngineering, id.Role)
	assert.Equal(t, []domain.AccessEventKind{domain.EventLogin}, audit.kinds())
}

func TestSessionService_LoginInvalidCredentials(t *testing.T) {
	for _, cause := range []error{domain.ErrInvalidCredentials, domain.ErrUserNotFound} {
		store := newMemSessionStore()
		auth := &stubAuthenticator{fn: func(context.Context, domain.Credentials) (*domain.Principal, error) {
			return nil, fmt.Errorf("lookup: %w", cause)
		}}
		svc := newTestSessionService(auth, store, nil)

		session, err := svc.Login(context.Background(), validCreds)
		assert.Nil(t, session)
		require.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.True(t, strings.HasPrefix(err.Error(), "invalid credentials"))
		assert.Empty(t, store.sessions)
	}
}

func TestSessionService_LoginEmptyFields(t *testing.T) {
	called := false
	auth := &stubAuthenticator{fn: func(context.Context, domain.Credentials) (*domain.Principal, error) {
		called = true
		return nil, nil
	}}
	svc := newTestSessionService(auth, newMemSessionStore(), nil)

	_, err := svc.Login(context.Background(), domain.Credentials{Email: "ana@novavp.com"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	assert.False(t, called)
}

func TestSessionService_LoginUnavailable(t *testing.T) {
	auth := &stubAuthenticator{fn: func(context.Context, domain.Credentials) (*domain.Principal, error) {
		return nil, errors.New("connection refused")
	}}
	store := newMemSessionStore()
	audit := &recordingAudit{}
	svc := newTestSessionService(auth, store, audit)

	_, err := svc.Login(context.Background(), validCreds)
	require.ErrorIs(t, err, domain.ErrAuthUnavailable)

	var ae *domain.AuthError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, domain.ReasonUnavailable, ae.Reason)
	assert.Empty(t, store.sessions)
	assert.Equal(t, []domain.AccessEventKind{domain.EventLoginFail}, audit.kinds())
}

func TestSessionService_LoginTimeout(t *testing.T) {
	auth := &stubAuthenticator{fn: func(ctx context.Context, _ domain.Credentials) (*domain.Principal, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}}
	svc := newTestSessionService(auth, newMemSessionStore(), nil)

	start := time.Now()
	_, err := svc.Login(context.Background(), validCreds)
	require.ErrorIs(t, err, domain.ErrAuthUnavailable)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSessionService_LoginStoreFailure(t *testing.T) {
	store := newMemSessionStore()
	store.saveErr = errors.New("redis down")
	svc := newTestSessionService(acceptAs("admin"), store, nil)

	_, err := svc.Login(context.Background(), validCreds)
	require.ErrorIs(t, err, domain.ErrAuthUnavailable)
}

func TestSessionService_UnknownRoleStillLogsIn(t *testing.T) {
	svc := newTestSessionService(acceptAs("Estagiario"), newMemSessionStore(), nil)

	session, err := svc.Login(context.Background(), validCreds)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUnknown, session.Identity.Role)
}

func TestSessionService_LogoutIsIdempotent(t *testing.T) {
	store := newMemSessionStore()
	audit := &recordingAudit{}
	svc := newTestSessionService(acceptAs("RH"), store, audit)

	session, err := svc.Login(context.Background(), validCreds)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), session.Token))
	_, ok := svc.Identity(context.Background(), session.Token)
	assert.False(t, ok)

	require.NoError(t, svc.Logout(context.Background(), session.Token))
	_, ok = svc.Identity(context.Background(), session.Token)
	assert.False(t, ok)

	require.NoError(t, svc.Logout(context.Background(), ""))
	require.NoError(t, svc.Logout(context.Background(), "not-a-token"))
}

func TestSessionService_Expire(t *testing.T) {
	store := newMemSessionStore()
	audit := &recordingAudit{}
	svc := newTestSessionService(acceptAs("Comercial"), store, audit)

	session, err := svc.Login(context.Background(), validCreds)
	require.NoError(t, err)

	svc.Expire(context.Background(), session.Token)
	_, ok := svc.Identity(context.Background(), session.Token)
	assert.False(t, ok)
	assert.Equal(t, []domain.AccessEventKind{domain.EventLogin, domain.EventExpired}, audit.kinds())
}

func TestSessionService_IdentityAbsence(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestSessionService(acceptAs("admin"), store, nil)

	_, ok := svc.Identity(context.Background(), "")
	assert.False(t, ok)

	other := NewTokenIssuer("other-secret", "dashboard")
	forged, err := other.Issue(&domain.Session{
		ID:        "s-1",
		Identity:  domain.Identity{UserID: "user-1", Role: domain.RoleAdmin, Authenticated: true},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	_, ok = svc.Identity(context.Background(), forged)
	assert.False(t, ok)
}

func TestSessionService_CorruptSessionIsDiscarded(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestSessionService(acceptAs("admin"), store, nil)

	session, err := svc.Login(context.Background(), validCreds)
	require.NoError(t, err)

	store.findErr = fmt.Errorf("decode: %w", domain.ErrSessionCorrupt)
	_, ok := svc.Identity(context.Background(), session.Token)
	assert.False(t, ok)
	assert.Contains(t, store.deleted, session.ID)
}

func TestSessionService_StoreUnreachableReadsAsLoggedOut(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestSessionService(acceptAs("admin"), store, nil)

	session, err := svc.Login(context.Background(), validCreds)
	require.NoError(t, err)

	store.findErr = errors.New("i/o timeout")
	_, ok := svc.Identity(context.Background(), session.Token)
	assert.False(t, ok)
	assert.Empty(t, store.deleted)
}

func TestSessionService_ExpiredRecord(t *testing.T) {
	store := newMemSessionStore()
	svc := newTestSessionService(acceptAs("admin"), store, nil)

	session, err := svc.Login(context.Background(), validCreds)
	require.NoError(t, err)

	rec := store.sessions[session.ID]
	rec.ExpiresAt = time.Now().Add(-time.Minute)
	store.sessions[session.ID] = rec

	_, ok := svc.Identity(context.Background(), session.Token)
	assert.False(t, ok)
	assert.NotContains(t, store.sessions, session.ID)
}
