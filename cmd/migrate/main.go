package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"detectserver/internal/repository/sqlite"
)

func main() {
	dbPath := flag.String("db", filepath.Join("data", "detections.db"), "Database path")
	flag.Parse()

	fmt.Printf("Migrating database schema at %s\n", *dbPath)

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	// New runs the schema migration on open.
	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	defer db.Close()

	fmt.Println("Database tables created.")
}
