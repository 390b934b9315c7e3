package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func testSession() *domain.Session {
	now := time.Date(2024, time.June, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Session{
		ID:        "3f0c1a7e-session",
		Token:     "never-persisted",
		Identity:  domain.Identity{UserID: "u1", Username: "ana", Role: domain.RoleHR, Authenticated: true},
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestSessionStore_SaveFindDelete(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	s := testSession()

	require.NoError(t, store.Save(ctx, s, time.Hour))
	assert.Equal(t, time.Hour, mr.TTL("session:"+s.ID))
	assert.NotContains(t, mustGet(t, mr, "session:"+s.ID), "never-persisted")

	got, err := store.Find(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.Identity, got.Identity)
	assert.Empty(t, got.Token)

	require.NoError(t, store.Delete(ctx, s.ID))
	require.NoError(t, store.Delete(ctx, s.ID))

	_, err = store.Find(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_Expires(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	s := testSession()

	require.NoError(t, store.Save(ctx, s, time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Find(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionStore_CorruptRecord(t *testing.T) {
	store, mr := newTestStore(t)

	require.NoError(t, mr.Set("session:bad", "{not json"))
	_, err := store.Find(context.Background(), "bad")
	assert.ErrorIs(t, err, domain.ErrSessionCorrupt)

	require.NoError(t, mr.Set("session:empty", `{"id":"empty","identity":{}}`))
	_, err = store.Find(context.Background(), "empty")
	assert.ErrorIs(t, err, domain.ErrSessionCorrupt)
}

func TestSessionStore_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewSessionStore(client)
	mr.Close()

	_, err = store.Find(context.Background(), "any")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrSessionNotFound))
	assert.False(t, errors.Is(err, domain.ErrSessionCorrupt))
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
