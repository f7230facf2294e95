package repository

import (
	"context"
	"fmt"
	"time"

	"quotes-shopify-layer/internal/domain"
	"quotes-shopify-layer/internal/infrastructure/repository/entity"
	"quotes-shopify-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoQuoteRepository implements QuoteRepository using MongoDB
type MongoQuoteRepository struct {
	collection *mongo.Collection
}

// NewMongoQuoteRepository creates a new MongoDB quote repository
func NewMongoQuoteRepository(db *mongo.Database) ports.QuoteRepository {
	return &MongoQuoteRepository{
		collection: db.Collection("quotes"),
	}
}

// Create inserts a quote record and returns it with its generated ID
func (r *MongoQuoteRepository) Create(ctx context.Context, quote *domain.Quote) (*domain.Quote, error) {
	doc := entity.MongoQuoteDocFromDomain(quote)
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}

	return doc.ToDomain(), nil
}
