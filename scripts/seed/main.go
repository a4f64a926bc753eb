// scripts/seed/main.go
//
// Seeds the store with sample shop data for one owner, so the assistant
// can be exercised end to end without a real shop.
//
// Usage:
//   go run scripts/seed/main.go <owner_id>
//   go run scripts/seed/main.go demo@shop.com

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"inventory-assistant/config"
	"inventory-assistant/internal/model"
	"inventory-assistant/pkg/log"
	"inventory-assistant/pkg/mongodb"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run scripts/seed/main.go <owner_id>")
		os.Exit(1)
	}
	owner := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()
	client := mongodb.NewClient(mongodb.Config{
		BaseURL:    cfg.MongoDB.BaseURL,
		APIKey:     cfg.MongoDB.APIKey,
		DataSource: cfg.MongoDB.DataSource,
		Database:   cfg.MongoDB.Database,
	})

	now := time.Now().UTC()
	today := now.Format(time.RFC3339)
	yesterday := now.AddDate(0, 0, -1).Format(time.RFC3339)
	lastWeek := now.AddDate(0, 0, -6).Format(time.RFC3339)

	seed := map[string][]mongodb.Document{
		"products": {
			{model.OwnerField: owner, "name": "Basmati Rice 5kg", "category": "grains", "stock": 14, "costPrice": 380.0, "sellingPrice": 450.0, "expirationDate": now.AddDate(1, 0, 0).Format(time.RFC3339)},
			{model.OwnerField: owner, "name": "Sunflower Oil 1L", "category": "oils", "stock": 30, "costPrice": 110.0, "sellingPrice": 135.0, "expirationDate": now.AddDate(0, 8, 0).Format(time.RFC3339)},
			{model.OwnerField: owner, "name": "Milk Bread", "category": "bakery", "stock": 6, "costPrice": 22.0, "sellingPrice": 30.0, "expirationDate": now.AddDate(0, 0, -1).Format(time.RFC3339)},
			{model.OwnerField: owner, "name": "Bath Soap", "category": "toiletries", "stock": 0, "costPrice": 18.0, "sellingPrice": 25.0},
		},
		"suppliers": {
			{model.OwnerField: owner, "name": "Sharma Wholesale", "phone": "9810012345", "balance": 12500.0},
			{model.OwnerField: owner, "name": "City Distributors", "phone": "9810067890", "balance": 0.0},
		},
		"customers": {
			{model.OwnerField: owner, "name": "Ramesh Kumar", "phone": "9899011122", "creditBalance": 340.0},
			{model.OwnerField: owner, "name": "Priya Singh", "phone": "9899033344", "creditBalance": 0.0},
		},
		"bills": {
			{model.OwnerField: owner, "date": today, "customerName": "Ramesh Kumar", "totalAmount": 585.0, "items": []mongodb.Document{
				{"name": "Basmati Rice 5kg", "quantity": 1, "price": 450.0},
				{"name": "Sunflower Oil 1L", "quantity": 1, "price": 135.0},
			}},
			{model.OwnerField: owner, "date": yesterday, "customerName": "Priya Singh", "totalAmount": 270.0, "items": []mongodb.Document{
				{"name": "Sunflower Oil 1L", "quantity": 2, "price": 135.0},
			}},
			{model.OwnerField: owner, "date": lastWeek, "customerName": "Ramesh Kumar", "totalAmount": 90.0, "items": []mongodb.Document{
				{"name": "Milk Bread", "quantity": 3, "price": 30.0},
			}},
		},
	}

	for collection, docs := range seed {
		n, err := client.InsertMany(ctx, collection, docs)
		if err != nil {
			logger.Fatalf(ctx, "Failed to seed %s: %v", collection, err)
		}
		logger.Infof(ctx, "Seeded %d document(s) into %s", n, collection)
	}

	logger.Infof(ctx, "Done. Try: what are today's sales? (owner %s)", owner)
}
