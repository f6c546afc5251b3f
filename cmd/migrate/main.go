package main

import (
	"log"
	"os"

	"rag-postgres-be/internal/model"
	"rag-postgres-be/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn, database.DefaultPoolConfig())
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate for 3 Tables...")

	models := []interface{}{
		&model.DocumentChunk{},
		&model.EmbeddingCacheEntry{},
		&model.SearchHistory{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Vector Indexes
	// ivfflat needs rows to pick centroids from, so this is best-effort on an
	// empty database and safe to re-run after bulk ingestion.
	log.Println("Step 3: Creating Vector Indexes...")

	postMigrationSQL := []string{
		`CREATE INDEX IF NOT EXISTS documents_embedding_idx
		 ON documents USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100);`,

		`CREATE INDEX IF NOT EXISTS documents_metadata_idx
		 ON documents USING gin (metadata);`,

		`CREATE INDEX IF NOT EXISTS search_history_created_at_idx
		 ON search_history (created_at);`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	log.Println("✅ Success: Database migration completed successfully via GORM.")
}
