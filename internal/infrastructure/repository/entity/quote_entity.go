package entity

import (
	"time"

	"quotes-shopify-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoQuoteDoc represents a quote record in MongoDB
type MongoQuoteDoc struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty"`
	ShopifyDraftOrderID string             `bson:"shopifyDraftOrderId"`
	Shop                string             `bson:"shop"`
	Email               string             `bson:"email"`
	PONumber            string             `bson:"poNumber,omitempty"`
	POFileURL           string             `bson:"poFileUrl,omitempty"`
	Status              string             `bson:"status"`
	CreatedAt           time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoQuoteDoc) ToDomain() *domain.Quote {
	return &domain.Quote{
		ID:                  d.ID.Hex(),
		ShopifyDraftOrderID: d.ShopifyDraftOrderID,
		Shop:                d.Shop,
		Email:               d.Email,
		PONumber:            d.PONumber,
		POFileURL:           d.POFileURL,
		Status:              d.Status,
		CreatedAt:           d.CreatedAt,
	}
}

// MongoQuoteDocFromDomain converts a domain entity to a MongoDB document
func MongoQuoteDocFromDomain(quote *domain.Quote) *MongoQuoteDoc {
	doc := &MongoQuoteDoc{
		ShopifyDraftOrderID: quote.ShopifyDraftOrderID,
		Shop:                quote.Shop,
		Email:               quote.Email,
		PONumber:            quote.PONumber,
		POFileURL:           quote.POFileURL,
		Status:              quote.Status,
		CreatedAt:           quote.CreatedAt,
	}

	if quote.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(quote.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
