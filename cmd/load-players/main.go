package main

import (
	"flag"
	"log"

	"ttt/internal/config"
	"ttt/internal/db"
)

func main() {
	filePath := flag.String("file", "players.csv", "path to players csv")
	flag.Parse()

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Printf("failed to load .env: %v", err)
	}

	conn, err := db.Open()
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	players, err := db.LoadRoster(conn, *filePath)
	if err != nil {
		log.Fatalf("failed to load players: %v", err)
	}

	log.Printf("loaded %d players", len(players))
}
