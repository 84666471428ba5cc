// internal/pkg/session/manager.go
package session

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// storeTimeout bounds each store round trip so a slow database cannot
// suspend a request chain indefinitely.
const storeTimeout = 5 * time.Second

// Manager resolves, creates, and persists sessions around the durable
// Store, enforcing the expiry and touch-debounce policies.
type Manager struct {
	store      Store
	codec      *CookieCodec
	ttl        time.Duration
	touchAfter time.Duration
	logger     *zap.Logger
}

func NewManager(store Store, codec *CookieCodec, ttl, touchAfter time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		store:      store,
		codec:      codec,
		ttl:        ttl,
		touchAfter: touchAfter,
		logger:     logger,
	}
}

// Resolve loads the session referenced by the request cookie, or creates a
// fresh empty one when the cookie is absent, invalid, or stale. Sessions
// are created even for requests that never store anything (the cookie is
// issued unconditionally), trading some store bloat for simplicity.
//
// A store failure does not fail the request: it degrades to an ephemeral
// in-memory record that lives only for this request and issues no cookie.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) *Session {
	if cookie, err := r.Cookie(CookieName); err == nil {
		id, err := m.codec.Decode(cookie.Value)
		if err != nil {
			m.logger.Debug("discarding unverifiable session cookie", zap.Error(err))
		} else {
			sctx, cancel := context.WithTimeout(ctx, storeTimeout)
			rec, err := m.store.Get(sctx, id)
			cancel()
			if err != nil {
				m.logger.Error("session store read failed, degrading to ephemeral session", zap.Error(err))
				return m.ephemeralSession()
			}
			if rec != nil {
				return newSession(rec, false, false)
			}
			// Valid signature but no live record: expired or destroyed.
		}
	}
	return m.createSession(ctx)
}

func (m *Manager) createSession(ctx context.Context) *Session {
	rec, err := m.newRecord()
	if err != nil {
		m.logger.Error("session id generation failed", zap.Error(err))
		return m.ephemeralSession()
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()
	if err := m.store.Put(sctx, rec); err != nil {
		m.logger.Error("session store write failed, degrading to ephemeral session", zap.Error(err))
		return newSession(rec, false, true)
	}
	return newSession(rec, true, false)
}

func (m *Manager) ephemeralSession() *Session {
	rec, err := m.newRecord()
	if err != nil {
		rec = &Record{CreatedAt: time.Now().UTC(), ExpiresAt: time.Now().UTC().Add(m.ttl)}
	}
	return newSession(rec, false, true)
}

func (m *Manager) newRecord() (*Record, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Record{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
		TouchedAt: now,
	}, nil
}

// IssueCookie writes the signed session cookie for a freshly created
// session. The cookie expiry is fixed at issuance; only the stored
// record's expiry moves afterwards.
func (m *Manager) IssueCookie(w http.ResponseWriter, s *Session) {
	if s.Ephemeral() {
		return
	}
	value, err := m.codec.Encode(s.ID(), s.ExpiresAt())
	if err != nil {
		m.logger.Error("failed to sign session cookie", zap.Error(err))
		return
	}
	m.codec.SetCookie(w, value, s.ExpiresAt())
}

// Save persists the request's session changes. Dirty sessions are written
// in full with a refreshed expiry. Clean sessions are only touched, and
// only when the debounce interval has elapsed since the last touch, so
// request volume does not translate into write amplification.
func (m *Manager) Save(ctx context.Context, s *Session) {
	if s.Ephemeral() || s.Destroyed() {
		return
	}

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	now := time.Now().UTC()
	if s.Dirty() {
		rec := s.snapshot()
		rec.ExpiresAt = now.Add(m.ttl)
		rec.TouchedAt = now
		if err := m.store.Put(sctx, rec); err != nil {
			m.logger.Error("session store write failed", zap.Error(err))
		}
		return
	}

	if m.shouldTouch(s.rec, now) {
		if err := m.store.Touch(sctx, s.ID(), now.Add(m.ttl), now); err != nil {
			m.logger.Error("session store touch failed", zap.Error(err))
		}
	}
}

// shouldTouch applies the touch-debounce policy: refresh the stored expiry
// at most once per touchAfter interval.
func (m *Manager) shouldTouch(rec *Record, now time.Time) bool {
	return now.Sub(rec.TouchedAt) >= m.touchAfter
}

// Destroy removes the session record and clears the client cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) {
	s.destroyed = true
	if !s.Ephemeral() {
		sctx, cancel := context.WithTimeout(ctx, storeTimeout)
		defer cancel()
		if err := m.store.Delete(sctx, s.ID()); err != nil {
			m.logger.Error("session store delete failed", zap.Error(err))
		}
	}
	m.codec.ClearCookie(w)
}
