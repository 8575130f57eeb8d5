package cart

import "sync"

// Store owns one cart per staff session. Carts are created on first access
// and live until the session is dropped; they are never shared between users.
type Store struct {
	mu    sync.Mutex
	carts map[uint]*Cart
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{carts: make(map[uint]*Cart)}
}

// Get returns the cart owned by the given user, creating it when absent.
func (s *Store) Get(userID uint) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return c
}

// Drop discards a user's cart, if any.
func (s *Store) Drop(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
