package shopify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotes-shopify-layer/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphQLClientExecute_SendsAuthenticatedRequest(t *testing.T) {
	var gotPath, gotToken, gotContentType string
	var gotBody graphQLRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"draftOrderCreate": null}}`))
	}))
	defer srv.Close()

	client := NewGraphQLClientWithOptions(srv.Client(), srv.URL, zerolog.Nop())

	data, err := client.Execute(context.Background(), "my-shop.myshopify.com", "shpat_token", DraftOrderCreateMutation, map[string]interface{}{
		"input": DraftOrderInput{Email: "buyer@example.com"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/admin/api/2025-10/graphql.json", gotPath)
	assert.Equal(t, "shpat_token", gotToken)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, DraftOrderCreateMutation, gotBody.Query)
	assert.JSONEq(t, `{"draftOrderCreate": null}`, string(data))
}

func TestGraphQLClientExecute_UnauthorizedMeansInvalidToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewGraphQLClientWithOptions(srv.Client(), srv.URL, zerolog.Nop())

	_, err := client.Execute(context.Background(), "my-shop.myshopify.com", "stale", "mutation draftOrderCreate { x }", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestGraphQLClientExecute_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client := NewGraphQLClientWithOptions(srv.Client(), srv.URL, zerolog.Nop())

	_, err := client.Execute(context.Background(), "my-shop.myshopify.com", "tok", "query q { x }", nil)

	var transportErr *domain.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, http.StatusBadGateway, transportErr.Status)
	assert.Equal(t, "upstream unavailable", transportErr.Body)
}

func TestGraphQLClientExecute_TopLevelErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": null, "errors": [{"message": "Throttled"}]}`))
	}))
	defer srv.Close()

	client := NewGraphQLClientWithOptions(srv.Client(), srv.URL, zerolog.Nop())

	_, err := client.Execute(context.Background(), "my-shop.myshopify.com", "tok", "mutation draftOrderCreate { x }", nil)

	var gqlErr *domain.GraphQLErrorsError
	require.ErrorAs(t, err, &gqlErr)
	assert.JSONEq(t, `[{"message": "Throttled"}]`, string(gqlErr.Errors))
}

func TestGraphQLClientExecute_NullErrorsIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data": {"ok": true}, "errors": null}`))
	}))
	defer srv.Close()

	client := NewGraphQLClientWithOptions(srv.Client(), srv.URL, zerolog.Nop())

	data, err := client.Execute(context.Background(), "my-shop.myshopify.com", "tok", "query q { ok }", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(data))
}

func TestOperationName(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"mutation", "mutation draftOrderCreate($input: DraftOrderInput!) { x }", "draftOrderCreate"},
		{"query", "query shopInfo { shop { name } }", "shopInfo"},
		{"name glued to braces", "mutation metafieldsSet($m: [MetafieldsSetInput!]!){ x }", "metafieldsSet"},
		{"anonymous", "{ shop { name } }", "unknown"},
		{"empty", "", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, operationName(tt.query))
		})
	}
}
