package service

import (
	"sync"
	"time"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/cart"
)

// SessionStore keeps one cart per browsing session in memory. Carts are
// discarded when their session is deleted or goes idle past the TTL given to
// Sweep.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

type session struct {
	cart     *cart.Cart
	lastSeen time.Time
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*session),
		now:      time.Now,
	}
}

// Get returns the cart for id, creating an empty one on first use.
func (s *SessionStore) Get(id string) *cart.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{cart: cart.New()}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess.cart
}

// Delete drops the session and its cart
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Sweep removes sessions idle for longer than ttl and returns how many went.
func (s *SessionStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
