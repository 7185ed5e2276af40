package cart

import (
	"sync"

	"github.com/Divyanshi070700/Undiyu-2/internal/modules/catalog"
)

// Store keeps one cart per session in memory. Carts start empty and are never
// persisted; a restart or an expired cookie simply yields a fresh cart.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

func (s *Store) get(sessionID string) *Cart {
	c, ok := s.carts[sessionID]
	if !ok {
		c = &Cart{}
		s.carts[sessionID] = c
	}
	return c
}

func (s *Store) Add(sessionID string, p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).Add(p)
}

func (s *Store) Remove(sessionID, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).Remove(productID)
}

func (s *Store) UpdateQty(sessionID, productID string, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(sessionID).UpdateQty(productID, qty)
}

func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Snapshot returns a copy of the session's cart. Mutating the copy does not
// touch the stored cart.
func (s *Store) Snapshot(sessionID string) Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.get(sessionID)
	out := Cart{Lines: make([]Line, len(c.Lines))}
	copy(out.Lines, c.Lines)
	return out
}
