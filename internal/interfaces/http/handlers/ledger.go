// internal/interfaces/http/handlers/ledger.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/concessions-backend/internal/config"
	"github.com/your-org/concessions-backend/internal/domain/ledger"
	"github.com/your-org/concessions-backend/internal/domain/product"
	"github.com/your-org/concessions-backend/internal/infrastructure/database/postgres"
	"gorm.io/gorm"
)

// LedgerHandler handles monthly stock ledger endpoints
type LedgerHandler struct {
	ledgerService  *ledger.Service
	productService *product.Service
	config         *config.Config
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(db *gorm.DB, cfg *config.Config) *LedgerHandler {
	productService := product.NewService(db, cfg)
	return &LedgerHandler{
		ledgerService:  ledger.NewService(postgres.NewLedgerStore(db), productService),
		productService: productService,
		config:         cfg,
	}
}

// GetPeriod handles GET /venues/:venueId/products/:productId/ledger
//
// Optional year/month query parameters select the period; both default to the
// current calendar month. Reading triggers expiry recognition and the
// carry-forward re-sync before the document is resolved.
func (h *LedgerHandler) GetPeriod(c *gin.Context) {
	venueID, productID, ok := h.pathKey(c)
	if !ok {
		return
	}

	// Absent params default to the current period; present ones must parse.
	year := 0
	if v := c.Query("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid year",
			})
			return
		}
		year = parsed
	}
	month := 0
	if v := c.Query("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid month",
			})
			return
		}
		month = parsed
	}

	doc, err := h.ledgerService.ReadPeriod(venueID, productID, year, month)
	if err != nil {
		h.respondLedgerError(c, err)
		return
	}

	prod, err := h.productService.GetProduct(productID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ledger period retrieved successfully",
		"data": gin.H{
			"ledger":        doc,
			"current_stock": prod.CurrentStock,
		},
	})
}

// RecordMovement handles POST /venues/:venueId/products/:productId/movements
func (h *LedgerHandler) RecordMovement(c *gin.Context) {
	venueID, productID, ok := h.pathKey(c)
	if !ok {
		return
	}

	var req ledger.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	doc, err := h.ledgerService.RecordMovement(venueID, productID, &req)
	if err != nil {
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Movement recorded successfully",
		"data":    doc,
	})
}

// UpdateMovement handles PUT /venues/:venueId/products/:productId/movements/:entryId
func (h *LedgerHandler) UpdateMovement(c *gin.Context) {
	venueID, productID, ok := h.pathKey(c)
	if !ok {
		return
	}
	entryID := c.Param("entryId")

	var req ledger.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	doc, err := h.ledgerService.UpdateMovement(venueID, productID, entryID, &req)
	if err != nil {
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Movement updated successfully",
		"data":    doc,
	})
}

// DeleteMovement handles DELETE /venues/:venueId/products/:productId/ledger/:year/:month/movements/:entryId
func (h *LedgerHandler) DeleteMovement(c *gin.Context) {
	venueID, productID, ok := h.pathKey(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid year",
		})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid month",
		})
		return
	}
	entryID := c.Param("entryId")

	doc, err := h.ledgerService.DeleteMovement(venueID, productID, year, month, entryID)
	if err != nil {
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Movement deleted successfully",
		"data":    doc,
	})
}

// pathKey parses the (venue, product) key from the route
func (h *LedgerHandler) pathKey(c *gin.Context) (uint, uint, bool) {
	venueID, err := strconv.ParseUint(c.Param("venueId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid venue ID",
		})
		return 0, 0, false
	}
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, 0, false
	}
	return uint(venueID), uint(productID), true
}

// respondLedgerError maps domain errors onto HTTP statuses. A missing monthly
// document and a missing entry inside an existing document are distinct
// conditions for callers.
func (h *LedgerHandler) respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrLedgerNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ledger period not found",
		})
	case errors.Is(err, ledger.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Movement not found in the requested period",
		})
	case errors.Is(err, ledger.ErrMissingDate),
		errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrUnknownMovementType):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process ledger operation",
		})
	}
}
