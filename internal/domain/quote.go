package domain

import "time"

// QuoteStatusCreated is the only status this service ever writes; quotes are
// insert-only from its perspective.
const QuoteStatusCreated = "CREATED"

// LineItem is a single requested variant and quantity.
type LineItem struct {
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

// ShippingAddress is the structured address an external storefront submits.
// PostalCode is an alternate field name some storefronts use instead of Zip.
type ShippingAddress struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2"`
	City       string `json:"city"`
	Province   string `json:"province"`
	Country    string `json:"country"`
	Zip        string `json:"zip"`
	PostalCode string `json:"postalCode"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
}

// QuoteRequest is the inbound payload for quote creation. It is transient:
// constructed per call and discarded after processing.
type QuoteRequest struct {
	Shop            string           `json:"shop"`
	Email           string           `json:"email"`
	LineItems       []LineItem       `json:"lineItems"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	PONumber        string           `json:"poNumber,omitempty"`
	POFileURL       string           `json:"poFileUrl,omitempty"`
}

// Validate checks the structural requirements of a quote request. It returns
// a *ValidationError describing the first problem found.
func (r *QuoteRequest) Validate() error {
	if r.Shop == "" || r.Email == "" || len(r.LineItems) == 0 {
		return &ValidationError{Message: "Missing required fields: shop, email, and lineItems are required"}
	}
	for _, item := range r.LineItems {
		if item.VariantID == "" || item.Quantity <= 0 {
			return &ValidationError{Message: "Each lineItem must have variantId and quantity > 0"}
		}
	}
	return nil
}

// Quote is the local record of a successfully created draft order. Created
// exactly once per creation; never updated or deleted by this service.
type Quote struct {
	ID                  string    `json:"id"`
	ShopifyDraftOrderID string    `json:"shopify_draft_order_id"`
	Shop                string    `json:"shop"`
	Email               string    `json:"email"`
	PONumber            string    `json:"po_number,omitempty"`
	POFileURL           string    `json:"po_file_url,omitempty"`
	Status              string    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}
