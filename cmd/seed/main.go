package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"price-tracker/src/config"
	"price-tracker/src/interfaces"
	"price-tracker/src/logger"
	"price-tracker/src/models"
	"price-tracker/src/storage"
)

// -----------------------------------------------------------------------------
// Demo data loader. Stands in for the ingestion pipeline during development:
// fills the catalog and the event log with a handful of listings.
// -----------------------------------------------------------------------------

func main() {

	configPath := flag.String("config", "config/default.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	appLogger := logger.NewLogger("seed")

	var store interfaces.IStore
	switch cfg.Storage.DBType {
	case "postgres":
		store, err = storage.NewPostgresDB(cfg.MConfig, appLogger)
	default:
		store, err = storage.NewSQLiteDB(cfg.MConfig, appLogger)
	}
	if err != nil {
		appLogger.Critical("Failed to init db: %v", err)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to initialize db: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	products := []models.MProduct{
		{ID: 1, Model: "Alpha-128", Brand: "Nordic", Storage: "128GB", Color: "Black", Supplier: "Acme", CurrentPrice: 499.99, LastUpdated: now},
		{ID: 2, Model: "Alpha-256", Brand: "Nordic", Storage: "256GB", Color: "Silver", Supplier: "Acme", CurrentPrice: 599.00, LastUpdated: now.Add(-2 * time.Hour)},
		{ID: 3, Model: "Beta-64", Brand: "Quark", Storage: "64GB", Color: "Blue", Supplier: "Globex", CurrentPrice: 249.50, LastUpdated: now.Add(-26 * time.Hour)},
		{ID: 4, Model: "Beta-128", Brand: "Quark", Storage: "128GB", Color: "White", Supplier: "Globex", CurrentPrice: 289.90, LastUpdated: now.Add(-3 * 24 * time.Hour)},
	}

	for i := range products {
		if err := store.InsertProduct(ctx, &products[i]); err != nil {
			appLogger.Critical("Failed to insert product %s: %v", products[i].Model, err)
		}
	}

	// A real event trail for Alpha-128; Beta models stay sparse so the
	// synthetic path is exercised too.
	prices := []float64{529.99, 519.99, 509.99, 514.99, 499.99}
	for i, p := range prices {
		ev := models.MPriceEvent{
			Model:     "Alpha-128",
			Supplier:  "Acme",
			NewPrice:  p,
			CreatedAt: now.Add(-time.Duration(len(prices)-i) * 24 * time.Hour),
		}
		if err := store.InsertPriceEvent(ctx, &ev); err != nil {
			appLogger.Critical("Failed to insert event: %v", err)
		}
	}

	appLogger.Info("Seeded %d products and %d price events", len(products), len(prices))
}
