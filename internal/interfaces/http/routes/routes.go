// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/concessions-backend/internal/config"
	"github.com/your-org/concessions-backend/internal/interfaces/http/handlers"
	"gorm.io/gorm"
)

// SetupVenueRoutes sets up venue related routes
func SetupVenueRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	venueHandler := handlers.NewVenueHandler(db, cfg)
	productHandler := handlers.NewProductHandler(db, cfg)

	venues := rg.Group("/venues")
	{
		venues.POST("", venueHandler.CreateVenue)
		venues.GET("", venueHandler.GetVenues)
		venues.GET("/:venueId", venueHandler.GetVenue)
		venues.GET("/:venueId/products", productHandler.GetProducts)
	}
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.POST("", productHandler.CreateProduct)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupLedgerRoutes sets up the monthly stock ledger routes
func SetupLedgerRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	ledgerHandler := handlers.NewLedgerHandler(db, cfg)

	key := rg.Group("/venues/:venueId/products/:productId")
	{
		key.GET("/ledger", ledgerHandler.GetPeriod)
		key.POST("/movements", ledgerHandler.RecordMovement)
		key.PUT("/movements/:entryId", ledgerHandler.UpdateMovement)
		key.DELETE("/ledger/:year/:month/movements/:entryId", ledgerHandler.DeleteMovement)
	}
}

// SetupRoutes configures all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupVenueRoutes(rg, db, redisClient, cfg)
	SetupProductRoutes(rg, db, redisClient, cfg)
	SetupLedgerRoutes(rg, db, redisClient, cfg)
}
