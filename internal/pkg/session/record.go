// internal/pkg/session/record.go
package session

import "time"

// Flash message kinds. Each is a one-shot queue drained into the render
// context of the next request.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Record is the durable server-side session state, keyed by an opaque id
// held in the client cookie. The store owns the persistent copy; a request
// holds a transient Session wrapper around its own copy.
type Record struct {
	ID        string              `bson:"_id"`
	CreatedAt time.Time           `bson:"created_at"`
	ExpiresAt time.Time           `bson:"expires_at"`
	TouchedAt time.Time           `bson:"touched_at"`
	Identity  string              `bson:"identity,omitempty"`
	Flash     map[string][]string `bson:"flash,omitempty"`
}

// Session is the request-scoped view of a Record. It tracks whether the
// record changed during the request so the manager can decide between a
// full write and a debounced touch.
type Session struct {
	rec       *Record
	dirty     bool
	ephemeral bool // store was unreachable; never persisted, no cookie
	fresh     bool // created during this request, cookie not yet issued
	destroyed bool // explicitly destroyed; must not be written back
}

func newSession(rec *Record, fresh, ephemeral bool) *Session {
	return &Session{rec: rec, fresh: fresh, ephemeral: ephemeral}
}

func (s *Session) ID() string           { return s.rec.ID }
func (s *Session) ExpiresAt() time.Time { return s.rec.ExpiresAt }
func (s *Session) Dirty() bool          { return s.dirty }
func (s *Session) Ephemeral() bool      { return s.ephemeral }
func (s *Session) Fresh() bool          { return s.fresh }
func (s *Session) Destroyed() bool      { return s.destroyed }

// Identity returns the serialized identity reference, or "" when anonymous.
func (s *Session) Identity() string { return s.rec.Identity }

// SetIdentity stores the identity reference produced by the provider.
func (s *Session) SetIdentity(ref string) {
	if s.rec.Identity == ref {
		return
	}
	s.rec.Identity = ref
	s.dirty = true
}

// ClearIdentity drops the identity reference, returning the session to
// anonymous. Used on logout and when a stored reference no longer resolves.
func (s *Session) ClearIdentity() {
	if s.rec.Identity == "" {
		return
	}
	s.rec.Identity = ""
	s.dirty = true
}

// AddFlash enqueues a one-shot message for the next rendered page.
func (s *Session) AddFlash(kind, message string) {
	if s.rec.Flash == nil {
		s.rec.Flash = make(map[string][]string)
	}
	s.rec.Flash[kind] = append(s.rec.Flash[kind], message)
	s.dirty = true
}

// TakeFlash drains and returns all messages of a kind. The drain marks the
// session dirty so the cleared queue persists: each message is delivered
// at most once.
func (s *Session) TakeFlash(kind string) []string {
	msgs := s.rec.Flash[kind]
	if len(msgs) == 0 {
		return nil
	}
	delete(s.rec.Flash, kind)
	s.dirty = true
	return msgs
}

// snapshot returns a copy of the record safe to hand to the store.
func (s *Session) snapshot() *Record {
	return s.rec.clone()
}

// clone deep-copies the record, including the flash queues, so the copy
// and the original never share mutable state.
func (r *Record) clone() *Record {
	cp := *r
	if r.Flash != nil {
		cp.Flash = make(map[string][]string, len(r.Flash))
		for k, v := range r.Flash {
			cp.Flash[k] = append([]string(nil), v...)
		}
	}
	return &cp
}
