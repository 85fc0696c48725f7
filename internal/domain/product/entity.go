// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a concession product sold at a venue
type Product struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	VenueID     uint   `gorm:"not null;index" json:"venue_id"`
	SKU         string `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name        string `gorm:"not null;size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:100" json:"category"`
	Price       int64  `gorm:"not null" json:"price"` // Price in cents

	// CurrentStock mirrors the closing balance of the product's latest touched
	// ledger period. The ledger engine owns this value; it is a denormalized
	// read model, not a source of truth.
	CurrentStock decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"current_stock"`

	LowStockThreshold decimal.Decimal `gorm:"type:decimal(20,4);not null;default:5" json:"low_stock_threshold"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

// IsLowStock checks if the product is at or below its reorder threshold
func (p *Product) IsLowStock() bool {
	return p.CurrentStock.LessThanOrEqual(p.LowStockThreshold)
}
