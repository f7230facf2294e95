package application

import (
	"context"
	"testing"
	"time"

	"quotes-shopify-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionRepo struct {
	sessions []*domain.Session
	lookups  []string
	err      error
}

func (r *fakeSessionRepo) FindOfflineByShop(ctx context.Context, shop string) ([]*domain.Session, error) {
	r.lookups = append(r.lookups, shop)
	if r.err != nil {
		return nil, r.err
	}
	return r.sessions, nil
}

func (r *fakeSessionRepo) Save(ctx context.Context, session *domain.Session) error { return nil }

func (r *fakeSessionRepo) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	return 0, nil
}

func TestFindActiveCredential_NoSessions(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := NewCredentialsService(repo, zerolog.Nop())

	_, err := svc.FindActiveCredential(context.Background(), "my-shop.myshopify.com")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestFindActiveCredential_NormalizesShopDomain(t *testing.T) {
	repo := &fakeSessionRepo{}
	svc := NewCredentialsService(repo, zerolog.Nop())

	_, _ = svc.FindActiveCredential(context.Background(), "https://my-shop.myshopify.com/")
	require.Len(t, repo.lookups, 1)
	assert.Equal(t, "my-shop.myshopify.com", repo.lookups[0])
}

func TestFindActiveCredential_PrefersRequiredScope(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		{ID: "broad", AccessToken: "tok-broad", Scope: "read_products,write_products"},
		{ID: "scoped", AccessToken: "tok-scoped", Scope: "write_products,write_draft_orders"},
	}}
	svc := NewCredentialsService(repo, zerolog.Nop())

	session, err := svc.FindActiveCredential(context.Background(), "my-shop.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "scoped", session.ID)
}

func TestFindActiveCredential_ExpiredScopedLosesToValidUnscoped(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		{ID: "stale", AccessToken: "tok-stale", Scope: "write_draft_orders", Expires: &expired},
		{ID: "valid", AccessToken: "tok-valid", Scope: "write_products"},
	}}
	svc := NewCredentialsService(repo, zerolog.Nop())

	session, err := svc.FindActiveCredential(context.Background(), "my-shop.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, "valid", session.ID)
}

func TestFindActiveCredential_SkipsEmptyTokens(t *testing.T) {
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		{ID: "tokenless", AccessToken: "", Scope: "write_draft_orders"},
	}}
	svc := NewCredentialsService(repo, zerolog.Nop())

	_, err := svc.FindActiveCredential(context.Background(), "my-shop.myshopify.com")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestFindActiveCredential_OnlyExpiredSessions(t *testing.T) {
	expired := time.Now().Add(-time.Minute)
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		{ID: "a", AccessToken: "tok-a", Scope: "write_draft_orders", Expires: &expired},
		{ID: "b", AccessToken: "tok-b", Scope: "write_products", Expires: &expired},
	}}
	svc := NewCredentialsService(repo, zerolog.Nop())

	_, err := svc.FindActiveCredential(context.Background(), "my-shop.myshopify.com")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}
