package application

import (
	"context"
	"fmt"
	"time"

	"quotes-shopify-layer/internal/domain"
	"quotes-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// RequiredScope is the elevated scope a credential needs to create draft
// orders. Sessions granted before this scope was requested can still be
// stored alongside newer ones.
const RequiredScope = "write_draft_orders"

// CredentialsService resolves a usable offline credential for a shop.
// Multiple session records can accumulate across reinstalls; the newest ones
// carry the required scope while stale broad tokens do not, so selection must
// prefer scoped credentials to avoid silent permission failures at the API.
type CredentialsService struct {
	sessions ports.SessionRepository
	logger   zerolog.Logger
}

// NewCredentialsService creates a new credentials service
func NewCredentialsService(sessions ports.SessionRepository, logger zerolog.Logger) *CredentialsService {
	return &CredentialsService{
		sessions: sessions,
		logger:   logger,
	}
}

// FindActiveCredential returns an offline session usable for Admin API calls
// against the given shop, or domain.ErrUnauthenticated if none exists.
//
// Selection runs an ordered list of predicates and returns the first match:
//  1. a non-expired session whose scope includes RequiredScope,
//  2. any non-expired session with a non-empty access token.
func (s *CredentialsService) FindActiveCredential(ctx context.Context, shop string) (*domain.Session, error) {
	normalized := domain.NormalizeShopDomain(shop)

	sessions, err := s.sessions.FindOfflineByShop(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to look up sessions: %w", err)
	}

	s.logger.Debug().
		Str("shop", normalized).
		Int("sessions", len(sessions)).
		Msg("Resolving credential for shop")

	now := time.Now()
	predicates := []func(*domain.Session) bool{
		func(c *domain.Session) bool {
			return c.AccessToken != "" && c.HasScope(RequiredScope) && !c.Expired(now)
		},
		func(c *domain.Session) bool {
			return c.AccessToken != "" && !c.Expired(now)
		},
	}

	for _, match := range predicates {
		for _, session := range sessions {
			if match(session) {
				s.logger.Info().
					Str("shop", normalized).
					Str("session_id", session.ID).
					Str("scope", session.Scope).
					Msg("Selected credential for shop")
				return session, nil
			}
		}
	}

	return nil, domain.ErrUnauthenticated
}
