package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"rpgmanager/internal/auth"
	"rpgmanager/internal/config"
	"rpgmanager/internal/repository/postgres"
	"rpgmanager/internal/seed"
	serviceAuth "rpgmanager/internal/service/auth"
	"rpgmanager/internal/service/campaign"
	"rpgmanager/internal/templates"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Roll back and re-apply all migrations before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only apply migrations, don't seed data")
	clearData := flag.Bool("clear-data", false, "Delete campaigns owned by fixture users (keep schema)")
	fixturePath := flag.String("fixture", "", "Path to a YAML fixture (default: built-in demo data)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		log.Fatalf("🚫 BLOCKED: Cannot run destructive operations (--drop-tables or --clear-data) in production environment")
	}
	if cfg.SupabaseKey == "" {
		log.Fatalf("SUPABASE_KEY (service role) is required to create seed users")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	fixture, err := loadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	switch {
	case *clearData:
		log.Printf("🧹 Clearing seeded campaigns (environment: %s)", cfg.Environment)
	case *schemaOnly:
		log.Printf("🏗️  Applying migrations only (environment: %s)", cfg.Environment)
	default:
		log.Printf("🌱 Seeding database (environment: %s)", cfg.Environment)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if *dropTables {
		log.Println("🗑️  Resetting schema...")
		if err := postgres.Reset(pool, logger); err != nil {
			log.Fatalf("Failed to reset schema: %v", err)
		}
		log.Println("✅ Schema reset")
	} else {
		log.Println("📋 Ensuring database schema is up to date...")
		if err := postgres.Migrate(pool, logger); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Println("✅ Schema ready")
	}

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	seeder := newSeeder(cfg, pool, logger)

	if *clearData {
		n, err := seeder.Clear(ctx, fixture)
		if err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		log.Printf("✅ Deleted %d campaigns", n)
		return
	}

	report, err := seeder.Seed(ctx, fixture)
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}
	log.Printf("🎉 Seeding complete! users=%d campaigns=%d npcs=%d scenarios=%d sessions=%d",
		report.Users, report.Campaigns, report.NPCs, report.Scenarios, report.Sessions)
}

func loadFixture(path string) (*seed.Fixture, error) {
	if path == "" {
		return seed.LoadDemo()
	}
	return seed.LoadFile(path)
}

// newSeeder wires the same services the server uses, except that invitations
// are logged instead of emailed.
func newSeeder(cfg *config.Config, pool *pgxpool.Pool, logger *slog.Logger) *seed.Seeder {
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

	registry, err := templates.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load content templates: %v", err)
	}

	sender := seed.LogSender{Logger: logger}
	authorizer := serviceAuth.NewMemberBasedAuthorizer(campaignRepo)
	scenarioService := campaign.NewScenarioService(scenarioRepo, npcRepo, campaignRepo, authorizer, nil, logger)

	return seed.NewSeeder(
		auth.NewAdminClient(cfg.SupabaseURL, cfg.SupabaseKey),
		directoryRepo,
		seed.Services{
			Campaigns:  campaign.NewCampaignService(campaignRepo, authorizer, scenarioService, sender, logger),
			Membership: campaign.NewMembershipService(campaignRepo, txManager, sender, logger),
			Scenarios:  scenarioService,
			NPCs:       campaign.NewNPCService(npcRepo, authorizer, registry, logger),
			Sessions:   campaign.NewSessionService(sessionRepo, scenarioRepo, authorizer, logger),
		},
		logger,
	)
}
