// Package staff holds the register-facing API handlers used by cashiers,
// waiters and admins during service.
package staff

import "github.com/cantina-pos/internal/provider"

// Handler is the staff API handler entry point.
type Handler struct {
	*provider.Container
}

// New creates a staff handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
