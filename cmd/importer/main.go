package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"retail-records/internal/config"
	"retail-records/internal/db"
	"retail-records/internal/importer"
	"retail-records/internal/migrate"
	custrepo "retail-records/internal/repository/customer"
	orderrepo "retail-records/internal/repository/order"
	productrepo "retail-records/internal/repository/product"
)

func main() {
	var (
		filePath string
		kindName string
	)
	flag.StringVar(&filePath, "file", "", "Path to the CSV file; the first line is a header")
	flag.StringVar(&kindName, "kind", "", "What the file holds: customers, products or orders")
	flag.Parse()

	if filePath == "" || kindName == "" {
		flag.Usage()
		os.Exit(2)
	}
	kind, err := importer.ParseKind(kindName)
	if err != nil {
		log.Print(err)
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	ctx := context.Background()

	h, err := db.Open(ctx, cfg.DBDriver, cfg.DBConnString, nil)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer h.Close()

	if err := migrate.Apply(ctx, h); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("open file: %v", err)
	}
	defer f.Close()

	imp := importer.NewCSVImporter(kind, f, importer.Writers{
		Customers: custrepo.NewSQL(h, nil),
		Products:  productrepo.NewSQL(h, nil),
		Orders:    orderrepo.NewSQL(h, nil),
	})

	start := time.Now()
	count, err := imp.Run(ctx)
	if err != nil {
		log.Fatalf("import failed after %d rows: %v", count, err)
	}

	fmt.Printf("Imported %d %s in %s\n", count, kind, time.Since(start).Truncate(time.Millisecond))
}
