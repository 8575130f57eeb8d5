// Package admin holds the management API handlers: menu catalog, staff
// accounts and sales reports.
package admin

import "github.com/cantina-pos/internal/provider"

// Handler is the admin API handler entry point.
type Handler struct {
	*provider.Container
}

// New creates an admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
