package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quotes-shopify-layer/internal/domain"
	shopifyinfra "quotes-shopify-layer/internal/infrastructure/shopify"
	"quotes-shopify-layer/internal/ports"

	"github.com/rs/zerolog"
)

// CreateQuoteResult is returned after a successful quote creation.
type CreateQuoteResult struct {
	QuoteID      string
	DraftOrderID string
	InvoiceURL   string
}

// QuoteService orchestrates quote creation: it validates the inbound request,
// resolves a credential, creates the draft order and its purchase-order
// metafields on the Admin API, and records the outcome locally.
type QuoteService struct {
	credentials *CredentialsService
	client      ports.AdminAPIClient
	quotes      ports.QuoteRepository
	logger      zerolog.Logger
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	credentials *CredentialsService,
	client ports.AdminAPIClient,
	quotes ports.QuoteRepository,
	logger zerolog.Logger,
) *QuoteService {
	return &QuoteService{
		credentials: credentials,
		client:      client,
		quotes:      quotes,
		logger:      logger,
	}
}

// CreateQuote runs the quote pipeline for a single request.
//
// Once the draft order exists remotely there is no compensating action: a
// metafield or local-persistence failure surfaces as an error while the
// remote draft order remains.
func (s *QuoteService) CreateQuote(ctx context.Context, req *domain.QuoteRequest) (*CreateQuoteResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	shop := domain.NormalizeShopDomain(req.Shop)

	credential, err := s.credentials.FindActiveCredential(ctx, shop)
	if err != nil {
		return nil, err
	}

	draftOrder, err := s.createDraftOrder(ctx, shop, credential.AccessToken, req)
	if err != nil {
		return nil, err
	}

	if err := s.attachPOMetafields(ctx, shop, credential.AccessToken, draftOrder.ID, req); err != nil {
		return nil, err
	}

	quote, err := s.quotes.Create(ctx, &domain.Quote{
		ShopifyDraftOrderID: draftOrder.ID,
		Shop:                shop,
		Email:               req.Email,
		PONumber:            req.PONumber,
		POFileURL:           req.POFileURL,
		Status:              domain.QuoteStatusCreated,
		CreatedAt:           time.Now(),
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("shop", shop).
			Str("draft_order_id", draftOrder.ID).
			Msg("Draft order created but quote record could not be persisted")
		return nil, fmt.Errorf("failed to persist quote: %w", err)
	}

	s.logger.Info().
		Str("shop", shop).
		Str("quote_id", quote.ID).
		Str("draft_order_id", draftOrder.ID).
		Msg("Quote created")

	return &CreateQuoteResult{
		QuoteID:      quote.ID,
		DraftOrderID: draftOrder.ID,
		InvoiceURL:   draftOrder.InvoiceURL,
	}, nil
}

func (s *QuoteService) createDraftOrder(ctx context.Context, shop, accessToken string, req *domain.QuoteRequest) (*shopifyinfra.DraftOrder, error) {
	input := shopifyinfra.DraftOrderInput{
		Email:     req.Email,
		LineItems: make([]shopifyinfra.LineItemInput, 0, len(req.LineItems)),
		Note:      req.Notes,
	}
	for _, item := range req.LineItems {
		input.LineItems = append(input.LineItems, shopifyinfra.LineItemInput{
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	if addr := req.ShippingAddress; addr != nil {
		zip := addr.Zip
		if zip == "" {
			zip = addr.PostalCode
		}
		input.ShippingAddress = &shopifyinfra.MailingAddressInput{
			Address1:  addr.Address1,
			Address2:  addr.Address2,
			City:      addr.City,
			Province:  addr.Province,
			Country:   addr.Country,
			Zip:       zip,
			FirstName: addr.FirstName,
			LastName:  addr.LastName,
			Phone:     addr.Phone,
		}
	}

	data, err := s.client.Execute(ctx, shop, accessToken, shopifyinfra.DraftOrderCreateMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return nil, err
	}

	var payload shopifyinfra.DraftOrderCreatePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.DraftOrderCreate == nil {
		s.logger.Error().
			Str("shop", shop).
			RawJSON("data", nonNilJSON(data)).
			Msg("Admin API response is missing draftOrderCreate")
		return nil, &domain.ProtocolError{Details: data}
	}

	result := payload.DraftOrderCreate
	if len(result.UserErrors) > 0 {
		return nil, &domain.RemoteValidationError{UserErrors: result.UserErrors}
	}

	// A null draft order with zero user errors means the mutation likely
	// succeeded but the payload is unreadable under protected customer data
	// restrictions.
	if result.DraftOrder == nil {
		s.logger.Warn().
			Str("shop", shop).
			Msg("Draft order created but cannot be read due to protected customer data restrictions")
		return nil, domain.ErrRestrictedAccess
	}

	return result.DraftOrder, nil
}

// attachPOMetafields issues one metafieldsSet call per non-empty
// purchase-order field. The calls are sequential and independent; the first
// failure propagates without rolling back the draft order.
func (s *QuoteService) attachPOMetafields(ctx context.Context, shop, accessToken, draftOrderID string, req *domain.QuoteRequest) error {
	var metafields []shopifyinfra.MetafieldsSetInput
	if req.PONumber != "" {
		metafields = append(metafields, shopifyinfra.MetafieldsSetInput{
			Namespace: shopifyinfra.MetafieldNamespaceQuote,
			Key:       shopifyinfra.MetafieldKeyPONumber,
			Value:     req.PONumber,
			Type:      shopifyinfra.MetafieldTypeSingleLineText,
			OwnerID:   draftOrderID,
		})
	}
	if req.POFileURL != "" {
		metafields = append(metafields, shopifyinfra.MetafieldsSetInput{
			Namespace: shopifyinfra.MetafieldNamespaceQuote,
			Key:       shopifyinfra.MetafieldKeyPOFileURL,
			Value:     req.POFileURL,
			Type:      shopifyinfra.MetafieldTypeURL,
			OwnerID:   draftOrderID,
		})
	}

	for _, metafield := range metafields {
		_, err := s.client.Execute(ctx, shop, accessToken, shopifyinfra.MetafieldsSetMutation, map[string]interface{}{
			"metafields": []shopifyinfra.MetafieldsSetInput{metafield},
		})
		if err != nil {
			return fmt.Errorf("failed to set metafield %s: %w", metafield.Key, err)
		}
	}

	return nil
}

func nonNilJSON(data json.RawMessage) json.RawMessage {
	if len(data) == 0 {
		return json.RawMessage("null")
	}
	return data
}
