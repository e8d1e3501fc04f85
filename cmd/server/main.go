package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"rpgmanager/internal/auth"
	"rpgmanager/internal/config"
	"rpgmanager/internal/handler"
	"rpgmanager/internal/middleware"
	"rpgmanager/internal/repository/postgres"
	serviceAuth "rpgmanager/internal/service/auth"
	"rpgmanager/internal/service/campaign"
	"rpgmanager/internal/templates"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger) // Set as default logger

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Create JWT verifier for Supabase authentication
	jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	// Create pgx connection pool
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", pool.Config().MaxConns,
		"min_conns", pool.Config().MinConns,
	)

	if cfg.MigrateOnStart {
		if err := postgres.Migrate(pool, logger); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Logger: logger,
	}
	campaignRepo := postgres.NewCampaignRepository(repoConfig)
	scenarioRepo := postgres.NewScenarioRepository(repoConfig)
	npcRepo := postgres.NewNPCRepository(repoConfig)
	sessionRepo := postgres.NewSessionRepository(repoConfig)
	directoryRepo := postgres.NewDirectoryRepository(repoConfig)
	txManager := postgres.NewTransactionManager(repoConfig)

	// Default titles and NPC trait keys
	registry, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load content templates: %v", err)
	}

	// Auth provider: password sign-in for users, magic links for invitations
	gotrue := auth.NewGoTrueClient(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	inviter := auth.NewMagicLinkInviter(gotrue, cfg.SiteURL)

	// Create services
	authorizer := serviceAuth.NewMemberBasedAuthorizer(campaignRepo)
	scenarioService := campaign.NewScenarioService(scenarioRepo, npcRepo, campaignRepo, authorizer, nil, logger)
	campaignService := campaign.NewCampaignService(campaignRepo, authorizer, scenarioService, inviter, logger)
	membershipService := campaign.NewMembershipService(campaignRepo, txManager, inviter, logger)
	npcService := campaign.NewNPCService(npcRepo, authorizer, registry, logger)
	sessionService := campaign.NewSessionService(sessionRepo, scenarioRepo, authorizer, logger)
	directoryService := campaign.NewDirectoryService(directoryRepo, logger)

	logger.Info("services initialized")

	router := handler.NewRouter(handler.Handlers{
		Health:    handler.NewHealthHandler(pool),
		Auth:      handler.NewAuthHandler(gotrue, logger),
		Directory: handler.NewDirectoryHandler(directoryService, logger),
		Campaign:  handler.NewCampaignHandler(campaignService, scenarioService, logger),
		Member:    handler.NewMemberHandler(membershipService, logger),
		Scenario:  handler.NewScenarioHandler(scenarioService, logger),
		NPC:       handler.NewNPCHandler(npcService, logger),
		Session:   handler.NewSessionHandler(sessionService, logger),
		Metrics:   promhttp.Handler(),
	}, middleware.AuthMiddleware(jwtVerifier))

	// Build middleware chain
	// Order: CORS → Recovery → Logging → Routes (auth is applied per route group)
	var h http.Handler = router
	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
