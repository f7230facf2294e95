package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"quotes-shopify-layer/internal/application"
	"quotes-shopify-layer/internal/domain"
	"quotes-shopify-layer/internal/infrastructure/metrics"

	"github.com/rs/zerolog"
)

// QuoteHandler adapts quote creation to HTTP.
type QuoteHandler struct {
	quotes *application.QuoteService
	logger zerolog.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(quotes *application.QuoteService, logger zerolog.Logger) *QuoteHandler {
	return &QuoteHandler{
		quotes: quotes,
		logger: logger,
	}
}

type createQuoteResponse struct {
	Success      bool   `json:"success"`
	DraftOrderID string `json:"draftOrderId"`
	InvoiceURL   string `json:"invoiceUrl"`
	QuoteID      string `json:"quoteId"`
}

type errorResponse struct {
	Error      string             `json:"error"`
	Message    string             `json:"message,omitempty"`
	Details    json.RawMessage    `json:"details,omitempty"`
	UserErrors []domain.UserError `json:"userErrors,omitempty"`
}

// Create handles POST /api/quotes.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		metrics.QuoteFailures.WithLabelValues("invalid_input").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return
	}

	result, err := h.quotes.CreateQuote(r.Context(), &req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	metrics.QuotesCreated.Inc()
	writeJSON(w, http.StatusOK, createQuoteResponse{
		Success:      true,
		DraftOrderID: result.DraftOrderID,
		InvoiceURL:   result.InvoiceURL,
		QuoteID:      result.QuoteID,
	})
}

// MethodNotAllowed rejects anything other than POST on the creation endpoint.
func (h *QuoteHandler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed. Use POST to create quotes."})
}

// writeError converts a pipeline failure into the HTTP status and JSON shape
// implied by its kind. Anything unrecognized becomes a generic 500 with the
// error message passed through.
func (h *QuoteHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	var remoteErr *domain.RemoteValidationError
	var protocolErr *domain.ProtocolError

	switch {
	case errors.As(err, &validationErr):
		metrics.QuoteFailures.WithLabelValues("invalid_input").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Message})

	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.QuoteFailures.WithLabelValues("unauthenticated").Inc()
		writeJSON(w, http.StatusUnauthorized, errorResponse{
			Error: "Shop not authenticated or session expired. Please reinstall the app.",
		})

	case errors.As(err, &remoteErr):
		metrics.QuoteFailures.WithLabelValues("remote_validation").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:      "Failed to create draft order",
			UserErrors: remoteErr.UserErrors,
		})

	case errors.Is(err, domain.ErrRestrictedAccess):
		metrics.QuoteFailures.WithLabelValues("restricted_access").Inc()
		writeJSON(w, http.StatusForbidden, errorResponse{
			Error:   "Draft order was created but cannot be accessed due to protected customer data restrictions. Please configure your app for protected customer data access in Shopify Partners.",
			Details: json.RawMessage(`"See https://shopify.dev/docs/apps/launch/protected-customer-data"`),
		})

	case errors.As(err, &protocolErr):
		metrics.QuoteFailures.WithLabelValues("upstream_protocol").Inc()
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Invalid response from Shopify API",
			Details: protocolErr.Details,
		})

	default:
		metrics.QuoteFailures.WithLabelValues("internal").Inc()
		h.logger.Error().Err(err).Msg("Error creating quote")
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Internal server error",
			Message: err.Error(),
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
