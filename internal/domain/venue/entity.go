// internal/domain/venue/entity.go
package venue

import (
	"time"

	"gorm.io/gorm"
)

// Venue represents one concession stand location
type Venue struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null;size:100" json:"name"`
	Code       string         `gorm:"uniqueIndex;not null;size:20" json:"code"`
	Location   string         `gorm:"size:255" json:"location"`
	Phone      string         `gorm:"size:20" json:"phone"`
	Email      string         `gorm:"size:100" json:"email"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
