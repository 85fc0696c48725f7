// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/your-org/concessions-backend/internal/domain/ledger"
	"github.com/your-org/concessions-backend/internal/domain/product"
	"github.com/your-org/concessions-backend/internal/domain/venue"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// Venue domain - Base tables
		&venue.Venue{},

		// Product domain
		&product.Product{},

		// Ledger domain - monthly documents and their entries
		&ledger.StockLedger{},
		&ledger.StockEntry{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Venue indexes
		"CREATE INDEX IF NOT EXISTS idx_venues_code_active ON venues(code, is_active)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_venue_active ON products(venue_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)",
		"CREATE INDEX IF NOT EXISTS idx_products_category ON products(category)",

		// Ledger indexes - the chain walker and expiry scan both read every
		// document for a (venue, product) key in period order
		"CREATE INDEX IF NOT EXISTS idx_stock_ledgers_product_period ON stock_ledgers(venue_id, product_id, year, month)",
		"CREATE INDEX IF NOT EXISTS idx_stock_entries_ledger_position ON stock_entries(ledger_id, position)",
		"CREATE INDEX IF NOT EXISTS idx_stock_entries_expire_date ON stock_entries(expire_date) WHERE expire_date IS NOT NULL",
		"CREATE INDEX IF NOT EXISTS idx_stock_entries_date ON stock_entries(date)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedVenues(); err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}

	if err := m.seedProducts(); err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedVenues creates a default venue for development
func (m *Migration) seedVenues() error {
	var count int64
	m.db.Model(&venue.Venue{}).Count(&count)
	if count > 0 {
		return nil
	}

	venues := []venue.Venue{
		{Name: "North Stand Concessions", Code: "NORTH-01", Location: "North stand, level 1", IsActive: true},
		{Name: "South Stand Concessions", Code: "SOUTH-01", Location: "South stand, level 1", IsActive: true},
	}

	for _, v := range venues {
		if err := m.db.Create(&v).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d venues", len(venues))
	return nil
}

// seedProducts creates a handful of demo products for development
func (m *Migration) seedProducts() error {
	var count int64
	m.db.Model(&product.Product{}).Count(&count)
	if count > 0 {
		return nil
	}

	var firstVenue venue.Venue
	if err := m.db.Order("id ASC").First(&firstVenue).Error; err != nil {
		return err
	}

	products := []product.Product{
		{VenueID: firstVenue.ID, SKU: "HOTDOG-STD", Name: "Hot Dog", Category: "Food", Price: 650, LowStockThreshold: decimal.NewFromInt(20), IsActive: true},
		{VenueID: firstVenue.ID, SKU: "NACHOS-LRG", Name: "Nachos (Large)", Category: "Food", Price: 900, LowStockThreshold: decimal.NewFromInt(10), IsActive: true},
		{VenueID: firstVenue.ID, SKU: "SODA-500", Name: "Soda 500ml", Category: "Drinks", Price: 450, LowStockThreshold: decimal.NewFromInt(48), IsActive: true},
	}

	for _, p := range products {
		if err := m.db.Create(&p).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d products", len(products))
	return nil
}

// GetTableInfo logs row counts per table in development
func (m *Migration) GetTableInfo() {
	tables := []string{"venues", "products", "stock_ledgers", "stock_entries"}
	for _, table := range tables {
		var count int64
		if err := m.db.Table(table).Count(&count).Error; err != nil {
			log.Printf("Table %s: error counting rows: %v", table, err)
			continue
		}
		log.Printf("Table %s: %d rows", table, count)
	}
}
