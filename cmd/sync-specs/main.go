package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"phoneflip/internal/catalog"
	"phoneflip/internal/ingest"
	"phoneflip/internal/specsource"
	"phoneflip/pkg/database"
	"phoneflip/pkg/logger"
	"phoneflip/pkg/utils"
)

func main() {
	var (
		brand = flag.String("brand", "", "brand slug to sync (empty = all brands)")
	)
	flag.Parse()

	cfg := utils.LoadConfig()

	zl, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer zl.Sync()

	// No overall deadline: a full sync is throttled and can run long.
	ctx := context.Background()

	client := database.MustOpen(database.Config{URI: cfg.MongoURI, Name: cfg.MongoDB})
	defer client.Disconnect(context.Background())

	repo := catalog.NewMongoRepo(client.Database(cfg.MongoDB))
	specs := specsource.NewClient(cfg.SpecsAPIBase)

	importer := ingest.NewImporter(repo, specs, zl)
	importer.PhoneDelay = cfg.PhoneDelay
	importer.BrandDelay = cfg.BrandDelay

	if *brand == "" {
		report := importer.SyncAll(ctx)
		fmt.Printf(`
=== Full Sync (%s) ===
Brands:    %d
Phones:    %d
Imported:  %d
Failed:    %d
`, report.Status, report.TotalBrands, report.TotalPhones, report.SuccessfulImports, report.FailedImports)
		for _, e := range report.Errors {
			fmt.Printf("  [error] %s\n", e)
		}
		return
	}

	target := specsource.Brand{BrandName: *brand, BrandSlug: *brand}
	if brands, err := specs.ListBrands(ctx); err == nil {
		for _, b := range brands {
			if strings.EqualFold(b.BrandSlug, *brand) || strings.EqualFold(b.BrandName, *brand) {
				target = b
				break
			}
		}
	}

	report := importer.SyncBrand(ctx, target)
	fmt.Printf(`
=== Brand Sync: %s ===
Phones:    %d
Imported:  %d
Failed:    %d
`, report.Brand, report.TotalPhones, report.SuccessfulImports, report.FailedImports)
	for _, e := range report.Errors {
		fmt.Printf("  [error] %s\n", e)
	}
}
