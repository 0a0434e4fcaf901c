package redis

import (
	"time"

	"printcart/internal/cart"
)

// CartSnapshot is the persisted form of a cart session. State carries the
// items and display currency exactly as the store holds them; amounts stay
// in the reference currency.
type CartSnapshot struct {
	SessionID string         `json:"session_id"`
	State     cart.CartState `json:"state"`
	SavedAt   time.Time      `json:"saved_at"`
}
