package models

import (
	"time"
)

// Card is one business-card record. The ID doubles as the public link token,
// so it is a random UUID rather than a sequence.
type Card struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	LastName  string    `gorm:"size:100;not null" json:"last_name"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	Phone     string    `gorm:"size:50" json:"phone"`
	Company   string    `gorm:"size:255;not null" json:"company"`
	Position  string    `gorm:"size:255;not null" json:"position"`
	Website   string    `gorm:"size:500" json:"website"`
	PhotoPath string    `gorm:"size:500" json:"photo_path"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`

	// Derived on read, never persisted.
	ScanCount int64  `gorm:"-" json:"scan_count"`
	PhotoURL  string `gorm:"-" json:"photo_url,omitempty"`
}

// DisplayName is the name shown in listings and stats.
func (c *Card) DisplayName() string {
	return c.FirstName + " " + c.LastName
}

// CardInput carries the writable card fields of a create or update request.
// Pointers distinguish "not supplied" from "set to empty" on partial updates.
type CardInput struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Company   *string
	Position  *string
	Website   *string
	IsActive  *bool
}
