package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-roadmap/pkg/wizard"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("server: wizard session not found")

// SessionFactory builds the wizard session behind a new browser session. The
// entry is passed so observers can record per-session state.
type SessionFactory func(entry *SessionEntry) (*wizard.Session, error)

// SessionEntry is one browser's wizard state.
type SessionEntry struct {
	ID      string
	Session *wizard.Session
	CSRF    string

	mu       sync.Mutex
	lastSeen time.Time
	savedID  string
	fellBack bool
}

// SavedID returns the store id of the current roadmap, if it was saved.
func (e *SessionEntry) SavedID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.savedID
}

// SetSavedID records the store id of the current roadmap.
func (e *SessionEntry) SetSavedID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.savedID = id
}

// MarkFallback records that the last submission used the fallback roadmap.
func (e *SessionEntry) MarkFallback() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fellBack = true
}

// TakeFallback reports and clears the fallback flag.
func (e *SessionEntry) TakeFallback() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	fellBack := e.fellBack
	e.fellBack = false
	return fellBack
}

// Reset clears the wizard and the per-roadmap flags.
func (e *SessionEntry) Reset() {
	e.Session.Reset()
	e.mu.Lock()
	defer e.mu.Unlock()
	e.savedID = ""
	e.fellBack = false
}

func (e *SessionEntry) touch(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = now
}

func (e *SessionEntry) idleSince(now time.Time) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return now.Sub(e.lastSeen)
}

// SessionStore keeps wizard sessions in memory, keyed by a random id held in
// the browser cookie. Entries idle for longer than ttl are dropped.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*SessionEntry
	factory SessionFactory
	ttl     time.Duration
	now     func() time.Time
}

// NewSessionStore creates a store. A ttl <= 0 keeps sessions forever.
func NewSessionStore(factory SessionFactory, ttl time.Duration, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{
		entries: make(map[string]*SessionEntry),
		factory: factory,
		ttl:     ttl,
		now:     now,
	}
}

// Create starts a new wizard session.
func (s *SessionStore) Create() (*SessionEntry, error) {
	if s.factory == nil {
		return nil, errors.New("server: session factory is nil")
	}
	entry := &SessionEntry{
		ID:       uuid.NewString(),
		CSRF:     uuid.NewString(),
		lastSeen: s.now(),
	}
	session, err := s.factory(entry)
	if err != nil {
		return nil, err
	}
	entry.Session = session

	s.mu.Lock()
	s.entries[entry.ID] = entry
	s.mu.Unlock()
	return entry, nil
}

// Get returns the live entry for id and refreshes its idle timer.
func (s *SessionStore) Get(id string) (*SessionEntry, error) {
	now := s.now()

	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && s.expired(entry, now) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.touch(now)
	return entry, nil
}

// Delete drops the entry for id.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Sweep removes expired entries and returns how many were dropped. Entries
// with a submission in flight are kept.
func (s *SessionStore) Sweep() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, entry := range s.entries {
		if s.expired(entry, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live entries.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *SessionStore) expired(entry *SessionEntry, now time.Time) bool {
	if s.ttl <= 0 {
		return false
	}
	if entry.Session != nil && entry.Session.InFlight() {
		return false
	}
	return entry.idleSince(now) > s.ttl
}
