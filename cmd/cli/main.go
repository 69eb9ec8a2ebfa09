package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mbousquet-onestock/exchange/internal/catalog"
	"github.com/mbousquet-onestock/exchange/internal/store"
)

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	dbPath := seedCmd.String("db", "", "Path to the sqlite database (defaults to $DB_PATH or ./returns.db)")
	migrations := seedCmd.String("migrations", "migrations", "Path to the migrations directory")

	if len(os.Args) < 2 {
		fmt.Println("expected 'seed' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		seedCmd.Parse(os.Args[2:])
		seedCatalog(*dbPath, *migrations)
	default:
		fmt.Println("expected 'seed' subcommand")
		os.Exit(1)
	}
}

func seedCatalog(dbPath, migrationsDir string) {
	if dbPath == "" {
		dbPath = os.Getenv("DB_PATH")
	}
	if dbPath == "" {
		dbPath = "./returns.db"
	}

	db, err := store.NewStore(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	articles := catalog.DefaultArticles()
	if err := db.SeedArticles(articles); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	fmt.Printf("Seeded %d articles into %s\n", len(articles), dbPath)
}
