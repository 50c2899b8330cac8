package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"
	"github.com/RiverWatch-MH/riverwatch_backend/config"
	"github.com/RiverWatch-MH/riverwatch_backend/internal/database"
)

func main() {
	var (
		create = flag.Bool("create", false, "Create all database tables")
		drop   = flag.Bool("drop", false, "Drop all database tables")
		check  = flag.Bool("check", false, "Check that all required tables exist")
	)
	flag.Parse()

	if !*create && !*drop && !*check {
		log.Fatal("Usage: migrate -create | -drop | -check")
	}

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found: %v", err)
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *drop {
		if err := database.DropTables(db.DB); err != nil {
			log.Fatalf("❌ Failed to drop tables: %v", err)
		}
	}

	if *create {
		if err := database.CreateTables(db.DB); err != nil {
			log.Fatalf("❌ Failed to create tables: %v", err)
		}
	}

	if *check {
		if err := database.CheckTablesExist(db.DB); err != nil {
			log.Fatalf("❌ Table check failed: %v", err)
		}
	}
}
