package models

import "time"

// LibraryItem grants a user access to a book or customization after approval.
// Created server-side when a purchase request is approved; read-only afterwards.
type LibraryItem struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          string    `gorm:"type:uuid;not null;index" json:"user_id"`
	BookID          *int64    `gorm:"index" json:"book_id,omitempty"`
	CustomizationID *int64    `gorm:"index" json:"customization_id,omitempty"`
	AddedAt         time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"added_at"`

	// Associations
	Book          *Book          `gorm:"foreignKey:BookID" json:"book,omitempty"`
	Customization *Customization `gorm:"foreignKey:CustomizationID" json:"customization,omitempty"`
}

func (LibraryItem) TableName() string {
	return "library_items"
}
