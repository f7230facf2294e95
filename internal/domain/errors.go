package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnauthenticated indicates no usable offline credential exists for a shop.
var ErrUnauthenticated = errors.New("shop not authenticated or session expired")

// ErrInvalidToken indicates the Admin API rejected the access token with a
// 401, which usually means the stored session predates an app reinstall.
var ErrInvalidToken = errors.New("invalid access token; session may predate an app reinstall")

// ErrRestrictedAccess indicates the draftOrderCreate mutation reported no user
// errors but returned a null draft order. The order was likely created, but
// the app lacks protected customer data access to read it back.
var ErrRestrictedAccess = errors.New("draft order created but cannot be read due to protected customer data restrictions")

// ValidationError reports a structurally invalid inbound request.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// UserError is a field-level error reported by a Shopify mutation. It is
// surfaced to callers verbatim.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// RemoteValidationError carries a non-empty userErrors list returned by the
// Admin API for an otherwise well-formed mutation.
type RemoteValidationError struct {
	UserErrors []UserError
}

func (e *RemoteValidationError) Error() string {
	return fmt.Sprintf("draft order rejected with %d user error(s)", len(e.UserErrors))
}

// GraphQLErrorsError carries the top-level errors list of a GraphQL response.
// These are protocol-level failures (bad query, throttling), distinct from
// per-mutation user errors.
type GraphQLErrorsError struct {
	Errors json.RawMessage
}

func (e *GraphQLErrorsError) Error() string {
	return fmt.Sprintf("graphql errors: %s", string(e.Errors))
}

// TransportError is a non-2xx, non-401 HTTP response from the Admin API.
type TransportError struct {
	Status int
	Body   string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graphql request failed: %d %s", e.Status, e.Body)
}

// ProtocolError indicates the Admin API responded without the expected data
// shape. Details holds the raw payload for diagnostics.
type ProtocolError struct {
	Details json.RawMessage
}

func (e *ProtocolError) Error() string { return "invalid response from Shopify API" }
