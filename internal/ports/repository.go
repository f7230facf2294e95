package ports

import (
	"context"

	"quotes-shopify-layer/internal/domain"
)

// SessionRepository defines the interface for session (credential) persistence.
// The quote pipeline only reads; writes happen in the OAuth callback and the
// cleanup command.
type SessionRepository interface {
	// FindOfflineByShop returns all offline sessions stored for a shop domain.
	// Multiple records can accumulate across reinstalls.
	FindOfflineByShop(ctx context.Context, shop string) ([]*domain.Session, error)

	// Save stores a new session record.
	Save(ctx context.Context, session *domain.Session) error

	// DeleteByShop removes every session for a shop domain and returns the
	// number of records deleted.
	DeleteByShop(ctx context.Context, shop string) (int64, error)
}

// QuoteRepository defines the interface for quote log persistence.
type QuoteRepository interface {
	// Create inserts a quote record and returns it with its generated ID.
	Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error)
}
