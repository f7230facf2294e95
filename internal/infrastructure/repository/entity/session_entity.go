package entity

import (
	"time"

	"quotes-shopify-layer/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoSessionDoc represents a session record in MongoDB
type MongoSessionDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Shop        string             `bson:"shop"`
	IsOnline    bool               `bson:"isOnline"`
	AccessToken string             `bson:"accessToken"`
	Scope       string             `bson:"scope"`
	Expires     *time.Time         `bson:"expires,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSessionDoc) ToDomain() *domain.Session {
	return &domain.Session{
		ID:          d.ID.Hex(),
		Shop:        d.Shop,
		IsOnline:    d.IsOnline,
		AccessToken: d.AccessToken,
		Scope:       d.Scope,
		Expires:     d.Expires,
		CreatedAt:   d.CreatedAt,
	}
}

// MongoSessionDocFromDomain converts a domain entity to a MongoDB document
func MongoSessionDocFromDomain(session *domain.Session) *MongoSessionDoc {
	doc := &MongoSessionDoc{
		Shop:        session.Shop,
		IsOnline:    session.IsOnline,
		AccessToken: session.AccessToken,
		Scope:       session.Scope,
		Expires:     session.Expires,
		CreatedAt:   session.CreatedAt,
	}

	if session.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(session.ID); err == nil {
			doc.ID = objID
		}
	}

	return doc
}
