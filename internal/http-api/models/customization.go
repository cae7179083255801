package models

import "time"

// Customization is a per-user personalized copy of a base Book.
type Customization struct {
	ID             int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BookID         int64     `json:"book_id" gorm:"not null;index"`
	UserID         string    `json:"user_id" gorm:"type:uuid;not null;index"`
	ChildName      string    `json:"child_name" gorm:"not null"`
	ChildAge       int       `json:"child_age"`
	ChildImagePath string    `json:"-" gorm:"column:child_image_path"`
	FilePath       string    `json:"-" gorm:"column:file_path"` // generated personalized book file
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;"`
}

func (Customization) TableName() string {
	return "customizations"
}
