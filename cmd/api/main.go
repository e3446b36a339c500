package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ecokart-gateway/config"
	"ecokart-gateway/internal/delivery/http/middleware"
	v1 "ecokart-gateway/internal/delivery/http/v1"
	"ecokart-gateway/internal/infrastructure/cache"
	"ecokart-gateway/internal/repository/rest"
	"ecokart-gateway/internal/usecase"
	"ecokart-gateway/pkg/logger"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Local key-value store: session token, featured-products cache
	memCache := cache.NewMemoryCache(cfg.CacheFeaturedTTL, cfg.CacheCleanupInterval)

	// Upstream storefront API clients
	upstream := rest.NewClient(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	favoritesRepo := rest.NewFavoritesRepository(upstream)
	productsRepo := rest.NewProductsRepository(upstream)
	authRepo := rest.NewAuthRepository(upstream)
	log.Info().Str("upstream", cfg.UpstreamBaseURL).Msg("Upstream API configured")

	// Set up Router
	mux := http.NewServeMux()

	// --- Modules Initialization ---

	// Favorites Module
	favoritesUC := usecase.NewFavoritesUsecase(favoritesRepo)
	favoritesHandler := v1.NewFavoritesHandler(favoritesUC)

	// Session Module (restores a persisted token, binds favorites to it)
	sessionUC := usecase.NewSessionUsecase(authRepo, favoritesUC, memCache)
	authHandler := v1.NewAuthHandler(sessionUC)

	// Warm the favorites state for a restored session
	if sessionUC.Authenticated() {
		warmCtx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout)
		favoritesUC.Load(warmCtx)
		cancel()
	}

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productsRepo, memCache, cfg.CacheFeaturedTTL)
	catalogHandler := v1.NewCatalogHandler(catalogUC, sessionUC)

	// Auth
	mux.HandleFunc("POST /api/v1/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/v1/auth/session", authHandler.Session)

	// Catalog
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/featured", catalogHandler.Featured)

	// Favorites
	mux.HandleFunc("GET /api/v1/favorites", favoritesHandler.GetFavorites)
	mux.HandleFunc("POST /api/v1/favorites", favoritesHandler.AddFavorite)
	mux.HandleFunc("POST /api/v1/favorites/toggle", favoritesHandler.ToggleFavorite)
	mux.HandleFunc("DELETE /api/v1/favorites/error", favoritesHandler.ClearError)
	mux.HandleFunc("DELETE /api/v1/favorites/{productId}", favoritesHandler.RemoveFavorite)

	// Health
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler)

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Per-IP rate limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitPerSecond),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("ecokart-gateway", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop("ecokart-gateway")
}
