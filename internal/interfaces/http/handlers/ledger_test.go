// internal/interfaces/http/handlers/ledger_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/concessions-backend/internal/config"
)

func newLedgerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewLedgerHandler(nil, &config.Config{})
	r := gin.New()
	r.GET("/venues/:venueId/products/:productId/ledger", h.GetPeriod)
	return r
}

func TestGetPeriod_RejectsMalformedParams(t *testing.T) {
	router := newLedgerRouter()

	tests := []struct {
		name string
		path string
	}{
		{"non-numeric venue id", "/venues/abc/products/1/ledger"},
		{"non-numeric product id", "/venues/1/products/abc/ledger"},
		{"non-numeric year", "/venues/1/products/1/ledger?year=abc"},
		{"zero year", "/venues/1/products/1/ledger?year=0"},
		{"non-numeric month", "/venues/1/products/1/ledger?year=2024&month=abc"},
		{"month below range", "/venues/1/products/1/ledger?year=2024&month=0"},
		{"month above range", "/venues/1/products/1/ledger?year=2024&month=13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
