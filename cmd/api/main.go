package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"quotes-shopify-layer/internal/application"
	"quotes-shopify-layer/internal/domain"
	"quotes-shopify-layer/internal/infrastructure/api"
	"quotes-shopify-layer/internal/infrastructure/metrics"
	"quotes-shopify-layer/internal/infrastructure/repository"
	shopifyinfra "quotes-shopify-layer/internal/infrastructure/shopify"
	"quotes-shopify-layer/internal/infrastructure/statestore"
	"quotes-shopify-layer/internal/ports"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const oauthStateTTL = 10 * time.Minute

func main() {
	// Initialize logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("⚠️  Warning: .env file not found")
	}

	// Get configuration from environment
	mongoURI := os.Getenv("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:8080"
	}

	apiKey := os.Getenv("SHOPIFY_API_KEY")
	apiSecret := os.Getenv("SHOPIFY_API_SECRET")
	if apiKey == "" || apiSecret == "" {
		logger.Fatal().Msg("SHOPIFY_API_KEY and SHOPIFY_API_SECRET environment variables are required")
	}

	scopes := []string{"write_products", "write_draft_orders"}
	if raw := os.Getenv("SCOPES"); raw != "" {
		scopes = scopes[:0]
		for _, scope := range strings.Split(raw, ",") {
			if scope = strings.TrimSpace(scope); scope != "" {
				scopes = append(scopes, scope)
			}
		}
	}

	// Connect to MongoDB
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	db := client.Database(os.Getenv("MONGODB_DATABASE"))

	// Connect to Redis (OAuth state store)
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid REDIS_URL")
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Initialize repositories
	sessionRepo := repository.NewMongoSessionRepository(db)
	quoteRepo := repository.NewMongoQuoteRepository(db)
	states := statestore.NewRedisStateStore(redisClient, logger)

	// Initialize Shopify adapters
	adminClient := shopifyinfra.NewGraphQLClient(logger)
	oauth := shopifyinfra.NewOAuth(shopifyinfra.OAuthConfig{
		APIKey:      apiKey,
		APISecret:   apiSecret,
		RedirectURL: appURL + "/auth/callback",
		Scopes:      scopes,
	}, logger)

	// Initialize application services
	credentialsService := application.NewCredentialsService(sessionRepo, logger)
	quoteService := application.NewQuoteService(credentialsService, adminClient, quoteRepo, logger)
	quoteHandler := api.NewQuoteHandler(quoteService, logger)

	allowedOrigins := api.ParseAllowedOrigins(os.Getenv("ALLOWED_ORIGINS"))
	policy := api.CORSPolicy{AllowedOrigins: allowedOrigins}

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	// OptionsPassthrough lets preflights reach the explicit OPTIONS route,
	// which answers 204; the policy middleware supplies the allow-origin
	// fallback on actual requests.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:     allowedOrigins,
		AllowedMethods:     []string{"POST", "OPTIONS"},
		AllowedHeaders:     []string{"Content-Type"},
		MaxAge:             86400,
		OptionsPassthrough: true,
	}))
	r.Use(policy.Middleware)

	r.MethodNotAllowed(quoteHandler.MethodNotAllowed)

	// Health check - must be public for monitoring
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	// Prometheus metrics
	r.Handle("/metrics", metrics.Handler())

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	r.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.ServeFile(w, r, "./docs/swagger.json")
	})

	// Quote creation endpoint
	r.Post("/api/quotes", quoteHandler.Create)
	r.Options("/api/quotes", policy.Preflight)

	// OAuth routes
	r.Get("/auth/shopify", oauthInitHandler(states, oauth, logger))
	r.Get("/auth/callback", oauthCallbackHandler(states, oauth, sessionRepo, logger))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info().Str("port", port).Msg("Starting API server")
	if err := http.ListenAndServe(":"+port, r); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start server")
	}
}

// oauthInitHandler initiates the OAuth flow
func oauthInitHandler(states ports.StateStore, oauth *shopifyinfra.OAuth, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shop := r.URL.Query().Get("shop")
		if shop == "" {
			http.Error(w, "shop parameter is required", http.StatusBadRequest)
			return
		}

		// Generate random state for CSRF protection
		stateBytes := make([]byte, 16)
		if _, err := rand.Read(stateBytes); err != nil {
			logger.Error().Err(err).Msg("Failed to generate state")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		state := hex.EncodeToString(stateBytes)

		if err := states.Save(ctx, state, domain.NormalizeShopDomain(shop), oauthStateTTL); err != nil {
			logger.Error().Err(err).Msg("Failed to save oauth state")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		authURL, err := oauth.AuthorizeURL(shop, state)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to build authorization URL")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		http.Redirect(w, r, authURL, http.StatusFound)
	}
}

// oauthCallbackHandler handles the OAuth callback and persists the offline
// session record used by the quote pipeline
func oauthCallbackHandler(
	states ports.StateStore,
	oauth *shopifyinfra.OAuth,
	sessionRepo ports.SessionRepository,
	logger zerolog.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		shop := r.URL.Query().Get("shop")
		code := r.URL.Query().Get("code")
		state := r.URL.Query().Get("state")

		if shop == "" || code == "" || state == "" {
			http.Error(w, "Missing required parameters", http.StatusBadRequest)
			return
		}

		if err := oauth.VerifyCallback(r.URL); err != nil {
			logger.Warn().Err(err).Str("shop", shop).Msg("OAuth callback signature verification failed")
			http.Error(w, "Invalid signature", http.StatusUnauthorized)
			return
		}

		storedShop, err := states.Take(ctx, state)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to look up oauth state")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		normalized := domain.NormalizeShopDomain(shop)
		if storedShop == "" || storedShop != normalized {
			http.Error(w, "Invalid state", http.StatusUnauthorized)
			return
		}

		token, scope, err := oauth.ExchangeToken(ctx, shop, code)
		if err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to exchange token")
			http.Error(w, "Failed to complete installation", http.StatusInternalServerError)
			return
		}

		session := &domain.Session{
			Shop:        normalized,
			IsOnline:    false,
			AccessToken: token,
			Scope:       scope,
			CreatedAt:   time.Now(),
		}
		if err := sessionRepo.Save(ctx, session); err != nil {
			logger.Error().Err(err).Str("shop", shop).Msg("Failed to save session")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		logger.Info().
			Str("shop", normalized).
			Str("scope", scope).
			Msg("App installed, offline session stored")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"installed": true,
			"shop":      normalized,
		})
	}
}
