package ports

import (
	"context"
	"time"
)

// StateStore holds short-lived OAuth state nonces for CSRF protection.
type StateStore interface {
	// Save stores the shop a state nonce was issued for, expiring after ttl.
	Save(ctx context.Context, state, shop string, ttl time.Duration) error

	// Take consumes a state nonce and returns the shop it was issued for, or
	// an empty string if the nonce is unknown or expired.
	Take(ctx context.Context, state string) (string, error)
}
