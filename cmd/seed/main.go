package main

import (
	"context"
	"log"
	"os"
	"time"

	"retail-records/internal/config"
	"retail-records/internal/db"
	"retail-records/internal/migrate"
	custrepo "retail-records/internal/repository/customer"
	orderrepo "retail-records/internal/repository/order"
	productrepo "retail-records/internal/repository/product"
	"retail-records/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	h, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatalf("open store: %v", err)
	}
	defer h.Close()

	if err := migrate.Apply(ctx, h); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	res, err := seed.Apply(ctx, seed.Repos{
		Customers: custrepo.NewSQL(h, logger),
		Products:  productrepo.NewSQL(h, logger),
		Orders:    orderrepo.NewSQL(h, logger),
	}, time.Now())
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	if res.Skipped {
		logger.Println("store already has customers, seed skipped")
		return
	}
	logger.Printf("seed applied customers=%d products=%d orders=%d", res.Customers, res.Products, res.Orders)
}
