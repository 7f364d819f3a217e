package services

import (
	"context"
	"sync"
	"time"

	"tawdifak-listings/pkg/cache"
	"tawdifak-listings/pkg/logger"
	"tawdifak-listings/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

// StoreFactory builds the cache store of a new session.
type StoreFactory func(sessionID string) cache.Store

// MemoryStores keeps each session's cache in process.
func MemoryStores() StoreFactory {
	return func(string) cache.Store { return cache.NewMemoryStore(0) }
}

// RedisStores keeps each session's cache in Redis under its own namespace;
// entries expire with the session.
func RedisStores(client redis.UniversalClient, idleTTL time.Duration) StoreFactory {
	return func(id string) cache.Store { return cache.NewRedisStore(client, id, idleTTL) }
}

// Session is one client's cache plus one page per listing type.
type Session struct {
	ID    string
	store cache.Store

	mu       sync.Mutex
	pages    map[string]ListingPage
	lastSeen time.Time
}

// Page returns the session's page for l, creating it on first use.
func (s *Session) Page(l Listing) ListingPage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pages[l.Name()]; ok {
		return p
	}
	p := l.NewPage(s.store)
	s.pages[l.Name()] = p
	return p
}

// ExistingPage returns the page for l only if the session already has one.
func (s *Session) ExistingPage(l Listing) (ListingPage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[l.Name()]
	return p, ok
}

// reset closes every page and empties the cache.
func (s *Session) reset(ctx context.Context) {
	s.mu.Lock()
	pages := s.pages
	s.pages = make(map[string]ListingPage)
	s.mu.Unlock()

	for _, p := range pages {
		p.Close()
	}
	cache.NewGuarded(s.store).Clear(ctx)
}

// SessionManager tracks live sessions and expires idle ones.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	newStore StoreFactory
	idleTTL  time.Duration
	now      func() time.Time
}

func NewSessionManager(newStore StoreFactory, idleTTL time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		newStore: newStore,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Acquire returns the session for id, creating it when absent, and marks it used.
func (m *SessionManager) Acquire(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		s = &Session{
			ID:    id,
			store: m.newStore(id),
			pages: make(map[string]ListingPage),
		}
		m.sessions[id] = s
		metrics.ActiveSessions.Set(float64(len(m.sessions)))
		logger.GlobalLogger.Debugf("session %s started", id)
	}
	s.mu.Lock()
	s.lastSeen = m.now()
	s.mu.Unlock()
	return s
}

// Clear drops the pages of session id and empties its cache. The session
// itself stays valid.
func (m *SessionManager) Clear(ctx context.Context, id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if ok {
		s.reset(ctx)
	}
}

// Sweep ends sessions idle for longer than the idle TTL and returns how many ended.
func (m *SessionManager) Sweep(ctx context.Context) int {
	cutoff := m.now().Add(-m.idleTTL)

	m.mu.Lock()
	var expired []*Session
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		s.mu.Unlock()
		if idle {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	for _, s := range expired {
		s.reset(ctx)
	}
	if len(expired) > 0 {
		logger.GlobalLogger.Debugf("expired %d idle sessions", len(expired))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
