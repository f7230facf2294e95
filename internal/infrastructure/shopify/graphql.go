package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"quotes-shopify-layer/internal/domain"
	"quotes-shopify-layer/internal/infrastructure/metrics"
	"quotes-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// APIVersion is the Admin API version every GraphQL call is pinned to.
const APIVersion = "2025-10"

// GraphQLClient issues authenticated GraphQL requests against a shop's Admin
// API and translates transport and protocol failures into domain errors.
// Single best-effort call per invocation: no retries, no timeout beyond the
// underlying HTTP client's default.
type GraphQLClient struct {
	httpClient *http.Client
	apiVersion string
	baseURL    string // overrides the https://<shop> base when set
	logger     zerolog.Logger
}

// NewGraphQLClient creates a client pinned to APIVersion.
func NewGraphQLClient(logger zerolog.Logger) *GraphQLClient {
	return &GraphQLClient{
		httpClient: http.DefaultClient,
		apiVersion: APIVersion,
		logger:     logger,
	}
}

// NewGraphQLClientWithOptions creates a client with an explicit HTTP client
// and endpoint base, used to point calls at a fake server.
func NewGraphQLClientWithOptions(httpClient *http.Client, baseURL string, logger zerolog.Logger) *GraphQLClient {
	return &GraphQLClient{
		httpClient: httpClient,
		apiVersion: APIVersion,
		baseURL:    baseURL,
		logger:     logger,
	}
}

var _ ports.AdminAPIClient = (*GraphQLClient)(nil)

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors json.RawMessage `json:"errors"`
}

// Execute posts a single GraphQL request with the shop's access token and
// returns the decoded data payload unchanged.
//
// Translation of failures: HTTP 401 means the token was rejected (likely a
// session from before a reinstall); any other non-2xx surfaces as a
// TransportError with status and body; a 2xx body carrying a top-level errors
// list surfaces as a GraphQLErrorsError with the list verbatim.
func (c *GraphQLClient) Execute(ctx context.Context, shop, accessToken, query string, variables map[string]interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(shop), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	operation := operationName(query)
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.AdminAPIDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("graphql request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn().Str("shop", shop).Str("operation", operation).Msg("Admin API rejected access token")
		return nil, domain.ErrInvalidToken
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, &domain.TransportError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var result graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode graphql response: %w", err)
	}

	if len(result.Errors) > 0 && string(result.Errors) != "null" {
		c.logger.Error().
			Str("shop", shop).
			Str("operation", operation).
			RawJSON("errors", result.Errors).
			Msg("Admin API returned GraphQL errors")
		return nil, &domain.GraphQLErrorsError{Errors: result.Errors}
	}

	c.logger.Debug().
		Str("shop", shop).
		Str("operation", operation).
		Msg("Admin API call completed")

	return result.Data, nil
}

func (c *GraphQLClient) endpoint(shop string) string {
	base := "https://" + shop
	if c.baseURL != "" {
		base = c.baseURL
	}
	return fmt.Sprintf("%s/admin/api/%s/graphql.json", base, c.apiVersion)
}

// operationName extracts the operation name from a GraphQL document for
// metric labels.
func operationName(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		if f == "mutation" || f == "query" {
			if i+1 >= len(fields) {
				break
			}
			name := fields[i+1]
			if idx := strings.IndexAny(name, "({"); idx > 0 {
				name = name[:idx]
			}
			if name != "" && name != "{" {
				return name
			}
		}
	}
	return "unknown"
}
