package repository

import (
	"context"
	"fmt"
	"time"

	"quotes-shopify-layer/internal/domain"
	"quotes-shopify-layer/internal/infrastructure/repository/entity"
	"quotes-shopify-layer/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSessionRepository implements SessionRepository using MongoDB
type MongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new MongoDB session repository
func NewMongoSessionRepository(db *mongo.Database) ports.SessionRepository {
	return &MongoSessionRepository{
		collection: db.Collection("sessions"),
	}
}

// FindOfflineByShop returns all offline sessions stored for a shop domain
func (r *MongoSessionRepository) FindOfflineByShop(ctx context.Context, shop string) ([]*domain.Session, error) {
	filter := bson.M{
		"shop":     shop,
		"isOnline": false,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*domain.Session
	for cursor.Next(ctx) {
		var doc entity.MongoSessionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		sessions = append(sessions, doc.ToDomain())
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return sessions, nil
}

// Save stores a new session record
func (r *MongoSessionRepository) Save(ctx context.Context, session *domain.Session) error {
	doc := entity.MongoSessionDocFromDomain(session)
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if objID, ok := result.InsertedID.(primitive.ObjectID); ok {
		session.ID = objID.Hex()
	}
	session.CreatedAt = doc.CreatedAt

	return nil
}

// DeleteByShop removes every session for a shop domain
func (r *MongoSessionRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"shop": shop})
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	return result.DeletedCount, nil
}
