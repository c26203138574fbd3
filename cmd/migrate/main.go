package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"account-service/config"
	"account-service/pkg/database"
)

const usage = `
Account Service - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Apply all pending migrations
  down        Roll back all migrations (DANGEROUS)
  status      Show database connection and migration status

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
  go run cmd/migrate/main.go down
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	// Load config and connect to database
	cfg := config.LoadConfig()
	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		log.Println("🚀 Running migrations UP...")
		if err := database.RunMigrations(ctx, db); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}
		log.Println("✅ Migrations completed successfully!")
	case "down":
		log.Println("⬇️  Rolling back migrations...")
		if err := database.RollbackMigrations(ctx, db); err != nil {
			log.Fatalf("❌ Rollback failed: %v", err)
		}
		log.Println("✅ Rollback completed successfully!")
	case "status":
		showStatus(ctx, cfg, db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func showStatus(ctx context.Context, cfg *config.Config, db *sql.DB) {
	log.Println("🔍 Checking database status...")
	log.Printf("   - Host: %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	if err := database.MigrationStatus(ctx, db); err != nil {
		log.Fatalf("❌ Migration status failed: %v", err)
	}
}
