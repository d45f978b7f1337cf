package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"booking-engine-server/config"
	"booking-engine-server/services"
)

// categorySeed describes one browsable category row.
type categorySeed struct {
	Key         string
	Name        string
	Description string
	Icon        string
	SortOrder   int
}

var categorySeeds = []categorySeed{
	{"cleaning", "Cleaning", "House, office and deep cleaning", "broom", 1},
	{"plumbing", "Plumbing", "Repairs, leaks and installations", "wrench", 2},
	{"electrical", "Electrical", "Wiring, fixtures and safety", "bolt", 3},
	{"gardening", "Gardening", "Lawn, hedges and landscaping", "leaf", 4},
	{"pool", "Pool", "Pool cleaning and maintenance", "droplet", 5},
	{"chef", "Private Chef", "In-home dining experiences", "utensils", 6},
	{"handyman", "Handyman", "Assembly, mounting and small fixes", "hammer", 7},
}

// seedCatalog inserts the category and service rows backing the public
// catalog endpoints. Pricing rules live in the in-memory catalog; only
// display fields are persisted. Existing rows are left untouched.
func seedCatalog() error {
	dbCfg := config.AppConfig.Database
	connStr := os.Getenv("DB_URL")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			dbCfg.Host, dbCfg.Port, dbCfg.User, dbCfg.Password, dbCfg.Name, dbCfg.SSLMode)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("✅ Successfully connected to database")

	for _, cat := range categorySeeds {
		_, err := db.Exec(`
			INSERT INTO service_categories (key, name, description, icon, is_active, sort_order, created_at, updated_at)
			VALUES ($1, $2, $3, $4, true, $5, NOW(), NOW())
			ON CONFLICT (key) DO NOTHING`,
			cat.Key, cat.Name, cat.Description, cat.Icon, cat.SortOrder)
		if err != nil {
			return fmt.Errorf("failed to seed category %s: %w", cat.Key, err)
		}
	}
	log.Printf("✅ Seeded %d categories", len(categorySeeds))

	seeded := 0
	for _, serviceID := range services.CatalogServiceIDs() {
		cfg, _ := services.GetServiceConfig(serviceID)
		_, err := db.Exec(`
			INSERT INTO services (service_key, category_id, name, description, base_price, price_unit, is_active, created_at, updated_at)
			SELECT $1, sc.id, $2, $3, $4, 'per visit', true, NOW(), NOW()
			FROM service_categories sc WHERE sc.key = $5
			ON CONFLICT (service_key) DO NOTHING`,
			cfg.ID, cfg.Name, fmt.Sprintf("%s bookings with upfront pricing", cfg.Name), cfg.BasePrice, string(cfg.Category))
		if err != nil {
			return fmt.Errorf("failed to seed service %s: %w", cfg.ID, err)
		}
		seeded++
	}
	log.Printf("✅ Seeded %d services", seeded)

	return nil
}
