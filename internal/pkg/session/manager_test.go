package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, store Store) *Manager {
	t.Helper()
	codec := NewCookieCodec("test-secret", false)
	return NewManager(store, codec, 7*24*time.Hour, 24*time.Hour, zap.NewNop())
}

func requestWithCookie(t *testing.T, m *Manager, s *Session) *http.Request {
	t.Helper()
	value, err := m.codec.Encode(s.ID(), s.ExpiresAt())
	require.NoError(t, err)
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: value})
	return r
}

func TestResolveCreatesAndPersistsEmptySession(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)

	s := m.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, s)
	assert.True(t, s.Fresh(), "cookieless request should create a session")
	assert.False(t, s.Ephemeral())

	// Created even though nothing was stored in it.
	rec, err := store.Get(context.Background(), s.ID())
	require.NoError(t, err)
	require.NotNil(t, rec)
}

func TestResolveRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)

	first := m.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	first.SetIdentity("user-1")
	m.Save(context.Background(), first)

	second := m.Resolve(context.Background(), requestWithCookie(t, m, first))
	assert.False(t, second.Fresh())
	assert.Equal(t, first.ID(), second.ID())
	assert.Equal(t, "user-1", second.Identity())
}

func TestResolveTamperedCookieCreatesNewSession(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)

	first := m.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: "tampered." + first.ID()})

	second := m.Resolve(context.Background(), r)
	assert.NotEqual(t, first.ID(), second.ID())
}

func TestTouchDebounce(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)
	ctx := context.Background()

	s := m.Resolve(ctx, httptest.NewRequest(http.MethodGet, "/", nil))

	// Clean session touched recently: expiry stays put.
	before, err := store.Get(ctx, s.ID())
	require.NoError(t, err)
	m.Save(ctx, s)
	after, err := store.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, before.ExpiresAt, after.ExpiresAt, "fresh touch must not rewrite expiry")

	// Backdate the last touch past the debounce interval: expiry refreshes.
	stale := s.snapshot()
	stale.TouchedAt = time.Now().UTC().Add(-25 * time.Hour)
	stale.ExpiresAt = time.Now().UTC().Add(time.Hour)
	require.NoError(t, store.Put(ctx, stale))

	loaded := m.Resolve(ctx, requestWithCookie(t, m, s))
	m.Save(ctx, loaded)

	refreshed, err := store.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.True(t, refreshed.ExpiresAt.After(stale.ExpiresAt), "stale touch must refresh expiry")
}

func TestFlashDeliveredExactlyOnce(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)
	ctx := context.Background()

	// Request N enqueues.
	n := m.Resolve(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	n.AddFlash(FlashSuccess, "saved!")
	m.Save(ctx, n)

	// Request N+1 drains.
	n1 := m.Resolve(ctx, requestWithCookie(t, m, n))
	assert.Equal(t, []string{"saved!"}, n1.TakeFlash(FlashSuccess))
	m.Save(ctx, n1)

	// Request N+2 sees nothing.
	n2 := m.Resolve(ctx, requestWithCookie(t, m, n))
	assert.Empty(t, n2.TakeFlash(FlashSuccess))
}

func TestDestroyedSessionIsNotResaved(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)
	ctx := context.Background()

	s := m.Resolve(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	s.AddFlash(FlashError, "gone")

	w := httptest.NewRecorder()
	m.Destroy(ctx, w, s)
	m.Save(ctx, s)

	rec, err := store.Get(ctx, s.ID())
	require.NoError(t, err)
	assert.Nil(t, rec)
}

// failingStore simulates a store outage.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) Get(context.Context, string) (*Record, error) { return nil, errStoreDown }
func (failingStore) Put(context.Context, *Record) error           { return errStoreDown }
func (failingStore) Touch(context.Context, string, time.Time, time.Time) error {
	return errStoreDown
}
func (failingStore) Delete(context.Context, string) error { return errStoreDown }

func TestStoreFailureDegradesToEphemeralSession(t *testing.T) {
	m := newTestManager(t, failingStore{})

	s := m.Resolve(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, s, "request must proceed despite store outage")
	assert.True(t, s.Ephemeral())
	assert.False(t, s.Fresh(), "ephemeral sessions issue no cookie")

	// The degraded session still works for this request's lifetime.
	s.AddFlash(FlashError, "transient")
	assert.Equal(t, []string{"transient"}, s.TakeFlash(FlashError))
}

func TestExpiredRecordIsNotResolved(t *testing.T) {
	store := NewMemoryStore()
	m := newTestManager(t, store)
	ctx := context.Background()

	s := m.Resolve(ctx, httptest.NewRequest(http.MethodGet, "/", nil))
	expired := s.snapshot()
	expired.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, store.Put(ctx, expired))

	replacement := m.Resolve(ctx, requestWithCookie(t, m, s))
	assert.NotEqual(t, s.ID(), replacement.ID())
}
