package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"phoneflip/internal/catalog"
	"phoneflip/internal/ingest"
	"phoneflip/pkg/database"
	"phoneflip/pkg/logger"
	"phoneflip/pkg/utils"
)

func main() {
	var (
		in = flag.String("file", "data/phone_specs.csv", "input CSV path")
	)
	flag.Parse()

	if err := ingest.CheckCSVExtension(*in); err != nil {
		log.Fatalf("rejected: %v", err)
	}

	cfg := utils.LoadConfig()

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client := database.MustOpen(database.Config{URI: cfg.MongoURI, Name: cfg.MongoDB})
	defer client.Disconnect(context.Background())

	repo := catalog.NewMongoRepo(client.Database(cfg.MongoDB))
	importer := ingest.NewImporter(repo, nil, zl)

	f, err := os.Open(*in)
	if err != nil {
		log.Fatalf("open %s: %v", *in, err)
	}
	defer f.Close()

	report, err := importer.ImportCSV(ctx, f)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf(`
=== Import Report ===
Rows:      %d
Imported:  %d
Failed:    %d
`, report.TotalRows, report.SuccessfulImports, report.FailedImports)

	for _, e := range report.Errors {
		fmt.Printf("  [error] %s\n", e)
	}
}
