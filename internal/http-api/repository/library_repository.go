package repository

import (
	"context"

	"storynest/internal/http-api/models"

	"gorm.io/gorm"
)

// LibraryRepository handles read access to a user's owned items.
type LibraryRepository interface {
	List(ctx context.Context, userID string) ([]models.LibraryItem, error)
	HasBook(ctx context.Context, userID string, bookID int64) (bool, error)
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) List(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	var items []models.LibraryItem
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Customization").
		Preload("Customization.Book").
		Where("user_id = ?", userID).
		Order("added_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *libraryRepository) HasBook(ctx context.Context, userID string, bookID int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LibraryItem{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
