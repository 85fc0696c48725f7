// internal/interfaces/http/handlers/venue.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/concessions-backend/internal/config"
	"github.com/your-org/concessions-backend/internal/domain/venue"
	"gorm.io/gorm"
)

// VenueHandler handles venue endpoints
type VenueHandler struct {
	venueService *venue.Service
	config       *config.Config
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(db *gorm.DB, cfg *config.Config) *VenueHandler {
	return &VenueHandler{
		venueService: venue.NewService(db, cfg),
		config:       cfg,
	}
}

// CreateVenue handles POST /venues
func (h *VenueHandler) CreateVenue(c *gin.Context) {
	var req venue.CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.venueService.CreateVenue(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Venue created successfully",
		"data":    v,
	})
}

// GetVenues handles GET /venues
func (h *VenueHandler) GetVenues(c *gin.Context) {
	venues, err := h.venueService.GetVenues()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve venues",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Venues retrieved successfully",
		"data":    venues,
	})
}

// GetVenue handles GET /venues/:venueId
func (h *VenueHandler) GetVenue(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("venueId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid venue ID",
		})
		return
	}

	v, err := h.venueService.GetVenue(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Venue retrieved successfully",
		"data":    v,
	})
}
