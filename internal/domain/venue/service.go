// internal/domain/venue/service.go
package venue

import (
	"fmt"

	"github.com/your-org/concessions-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles venue business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new venue service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateVenueRequest represents venue creation data
type CreateVenueRequest struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

// CreateVenue creates a new venue
func (s *Service) CreateVenue(req *CreateVenueRequest) (*Venue, error) {
	// Check if code already exists
	var existing Venue
	if err := s.db.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("venue with code '%s' already exists", req.Code)
	}

	v := &Venue{
		Name:     req.Name,
		Code:     req.Code,
		Location: req.Location,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: true,
	}

	if err := s.db.Create(v).Error; err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	return v, nil
}

// GetVenues retrieves all active venues
func (s *Service) GetVenues() ([]Venue, error) {
	var venues []Venue
	if err := s.db.Where("is_active = ?", true).Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve venues: %w", err)
	}
	return venues, nil
}

// GetVenue retrieves a venue by ID
func (s *Service) GetVenue(id uint) (*Venue, error) {
	var v Venue
	if err := s.db.Where("id = ?", id).First(&v).Error; err != nil {
		return nil, fmt.Errorf("venue not found")
	}
	return &v, nil
}
