package shopify

import "quotes-shopify-layer/internal/domain"

// DraftOrderCreateMutation creates a draft order. Only minimal fields are
// requested back to stay clear of protected customer data restrictions.
const DraftOrderCreateMutation = `
mutation draftOrderCreate($input: DraftOrderInput!) {
  draftOrderCreate(input: $input) {
    draftOrder {
      id
      name
      invoiceUrl
      status
    }
    userErrors {
      field
      message
    }
  }
}
`

// MetafieldsSetMutation attaches namespaced key/value annotations to an
// existing entity.
const MetafieldsSetMutation = `
mutation metafieldsSet($metafields: [MetafieldsSetInput!]!) {
  metafieldsSet(metafields: $metafields) {
    metafields {
      id
      namespace
      key
      value
    }
    userErrors {
      field
      message
    }
  }
}
`

// Metafield namespace and keys used for purchase-order annotations on draft
// orders.
const (
	MetafieldNamespaceQuote = "quote"
	MetafieldKeyPONumber    = "po_number"
	MetafieldKeyPOFileURL   = "po_file_url"

	MetafieldTypeSingleLineText = "single_line_text_field"
	MetafieldTypeURL            = "url"
)

// DraftOrderInput is the variable shape for DraftOrderCreateMutation.
type DraftOrderInput struct {
	Email           string               `json:"email"`
	LineItems       []LineItemInput      `json:"lineItems"`
	ShippingAddress *MailingAddressInput `json:"shippingAddress,omitempty"`
	Note            string               `json:"note,omitempty"`
}

// LineItemInput is a single variant/quantity pair in a draft order input.
type LineItemInput struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// MailingAddressInput is the normalized shipping address sent to Shopify.
// Absent fields are sent as empty strings rather than omitted.
type MailingAddressInput struct {
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Province  string `json:"province"`
	Country   string `json:"country"`
	Zip       string `json:"zip"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// MetafieldsSetInput is the variable shape for MetafieldsSetMutation.
type MetafieldsSetInput struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
	OwnerID   string `json:"ownerId"`
}

// DraftOrder holds the minimal draft-order fields read back after creation.
type DraftOrder struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	InvoiceURL string `json:"invoiceUrl"`
	Status     string `json:"status"`
}

// DraftOrderCreatePayload mirrors the data shape of DraftOrderCreateMutation.
// Pointers distinguish a null payload from an absent one.
type DraftOrderCreatePayload struct {
	DraftOrderCreate *struct {
		DraftOrder *DraftOrder        `json:"draftOrder"`
		UserErrors []domain.UserError `json:"userErrors"`
	} `json:"draftOrderCreate"`
}
