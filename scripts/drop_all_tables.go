package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Drops every application table plus the migration bookkeeping table. Use it
// when migrations are left dirty and `seed -drop-tables` cannot roll back.
func main() {
	dbURL := os.Getenv("SUPABASE_DB_URL")
	if dbURL == "" {
		log.Fatal("SUPABASE_DB_URL environment variable is required")
	}
	if os.Getenv("ENVIRONMENT") == "prod" {
		log.Fatal("refusing to drop tables in prod")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: script exiting

	// Children before campaigns
	dropSQL := `
		DROP TABLE IF EXISTS sessions CASCADE;
		DROP TABLE IF EXISTS npcs CASCADE;
		DROP TABLE IF EXISTS scenarios CASCADE;
		DROP TABLE IF EXISTS campaigns CASCADE;
		DROP TABLE IF EXISTS profiles CASCADE;
		DROP FUNCTION IF EXISTS get_all_users();
		DROP TABLE IF EXISTS rpg_schema_migrations CASCADE;
	`

	if _, err := db.Exec(dropSQL); err != nil {
		log.Fatalf("Failed to drop tables: %v", err)
	}

	fmt.Println("All tables dropped successfully")
}
