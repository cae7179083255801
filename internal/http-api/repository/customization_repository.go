package repository

import (
	"context"
	"fmt"

	"storynest/internal/http-api/models"

	"gorm.io/gorm"
)

// CustomizationRepository handles database operations for personalized books.
type CustomizationRepository interface {
	Create(ctx context.Context, c *models.Customization) error
	GetByID(ctx context.Context, id int64) (*models.Customization, error)
	ListByUser(ctx context.Context, userID string) ([]models.Customization, error)
	Delete(ctx context.Context, id int64) error
}

type customizationRepository struct {
	db *gorm.DB
}

func NewCustomizationRepository(db *gorm.DB) CustomizationRepository {
	return &customizationRepository{db: db}
}

func (r *customizationRepository) Create(ctx context.Context, c *models.Customization) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create customization: %w", err)
	}
	return nil
}

func (r *customizationRepository) GetByID(ctx context.Context, id int64) (*models.Customization, error) {
	var c models.Customization
	if err := r.db.WithContext(ctx).Preload("Book").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *customizationRepository) ListByUser(ctx context.Context, userID string) ([]models.Customization, error) {
	var list []models.Customization
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *customizationRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Customization{}, id).Error; err != nil {
		return fmt.Errorf("delete customization: %w", err)
	}
	return nil
}
