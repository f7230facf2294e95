package main

import (
	"context"
	"flag"
	"os"
	"time"

	"quotes-shopify-layer/internal/domain"
	"quotes-shopify-layer/internal/infrastructure/repository"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// One-off cleanup: deletes every stored session for a shop so the next
// install starts from a clean slate.
func main() {
	shop := flag.String("shop", "", "shop domain whose sessions should be deleted")
	flag.Parse()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	if *shop == "" {
		logger.Fatal().Msg("-shop flag is required")
	}

	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(os.Getenv("MONGODB_DATABASE"))
	sessionRepo := repository.NewMongoSessionRepository(db)

	normalized := domain.NormalizeShopDomain(*shop)
	logger.Info().Str("shop", normalized).Msg("Deleting old sessions")

	count, err := sessionRepo.DeleteByShop(ctx, normalized)
	if err != nil {
		logger.Fatal().Err(err).Str("shop", normalized).Msg("Failed to delete sessions")
	}

	logger.Info().Int64("deleted", count).Str("shop", normalized).Msg("Deleted sessions")
}
