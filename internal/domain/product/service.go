// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/your-org/concessions-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	VenueID           uint            `json:"venue_id" binding:"required"`
	SKU               string          `json:"sku" binding:"required"`
	Name              string          `json:"name" binding:"required"`
	Description       string          `json:"description"`
	Category          string          `json:"category"`
	Price             int64           `json:"price" binding:"required"`
	LowStockThreshold decimal.Decimal `json:"low_stock_threshold"`
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	// Check if SKU already exists
	var existing Product
	if err := s.db.Where("sku = ?", req.SKU).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("product with SKU '%s' already exists", req.SKU)
	}

	p := &Product{
		VenueID:           req.VenueID,
		SKU:               req.SKU,
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Price:             req.Price,
		CurrentStock:      decimal.Zero,
		LowStockThreshold: req.LowStockThreshold,
		IsActive:          true,
	}
	if p.LowStockThreshold.IsZero() {
		p.LowStockThreshold = decimal.NewFromInt(5)
	}

	if err := s.db.Create(p).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return p, nil
}

// GetProducts retrieves all active products for a venue
func (s *Service) GetProducts(venueID uint) ([]Product, error) {
	var products []Product
	if err := s.db.Where("venue_id = ? AND is_active = ?", venueID, true).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves a product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var p Product
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &p, nil
}

// SetCurrentStock writes the denormalized current-stock value pushed by the
// ledger engine
func (s *Service) SetCurrentStock(productID uint, quantity decimal.Decimal) error {
	result := s.db.Model(&Product{}).Where("id = ?", productID).Update("current_stock", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update current stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}
