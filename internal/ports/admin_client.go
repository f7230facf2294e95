package ports

import (
	"context"
	"encoding/json"
)

// AdminAPIClient issues authenticated GraphQL calls against a shop's Admin API.
type AdminAPIClient interface {
	// Execute posts a single GraphQL request and returns the decoded data
	// payload unchanged. Transport and protocol failures are translated into
	// the domain error taxonomy; there are no retries.
	Execute(ctx context.Context, shop, accessToken, query string, variables map[string]interface{}) (json.RawMessage, error)
}
