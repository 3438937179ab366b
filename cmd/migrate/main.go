package main

import (
	"context"
	"log"
	"os"

	"retail-records/internal/config"
	"retail-records/internal/db"
	"retail-records/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	h, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer h.Close()

	if err := migrate.Apply(ctx, h); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	logger.Printf("migrations applied driver=%s", h.Dialect())
}
