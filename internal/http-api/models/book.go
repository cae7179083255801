package models

import "time"

type Book struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title" gorm:"not null"`
	Price       float64   `json:"price" gorm:"not null;type:decimal(8,2)"`
	Category    string    `json:"category" gorm:"index"`
	Age         string    `json:"age"`    // recommended age range, e.g. "3-5"
	Gender      string    `json:"gender"` // "boy", "girl" or "any"
	Rate        float64   `json:"rate" gorm:"type:decimal(3,2);default:0"`
	Description string    `json:"description" gorm:"type:text"`
	FilePath    string    `json:"-" gorm:"column:file_path"`
	CoverPath   string    `json:"-" gorm:"column:cover_path"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Book) TableName() string {
	return "books"
}
