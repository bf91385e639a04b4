package models

import "time"

// Base contains the columns shared by every mutual-funds table.
// Rows are never soft-deleted; the store keeps them for the life of the site.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
