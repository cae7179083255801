package models

import "time"

const (
	PurchaseStatusPending  = "pending"
	PurchaseStatusApproved = "approved"
	PurchaseStatusRejected = "rejected"
)

// PurchaseRequest links a user to a book or a customization and waits for an
// admin decision. Exactly one of BookID / CustomizationID is set.
type PurchaseRequest struct {
	ID              int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          string     `json:"user_id" gorm:"type:uuid;not null;index"`
	BookID          *int64     `json:"book_id,omitempty" gorm:"index"`
	CustomizationID *int64     `json:"customization_id,omitempty" gorm:"index"`
	Status          string     `json:"status" gorm:"default:'pending';not null;index"`
	CreatedAt       time.Time  `json:"created_at" gorm:"autoCreateTime"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`

	// Associations
	User          *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Book          *Book          `json:"book,omitempty" gorm:"foreignKey:BookID"`
	Customization *Customization `json:"customization,omitempty" gorm:"foreignKey:CustomizationID"`
}

func (PurchaseRequest) TableName() string {
	return "purchase_requests"
}
