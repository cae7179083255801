package repository

import (
	"context"
	"fmt"
	"time"

	"storynest/internal/http-api/models"

	"gorm.io/gorm"
)

// PurchaseRepository handles database operations for purchase requests.
type PurchaseRepository interface {
	Create(ctx context.Context, p *models.PurchaseRequest) error
	GetByID(ctx context.Context, id int64) (*models.PurchaseRequest, error)
	ListAll(ctx context.Context) ([]models.PurchaseRequest, error)
	ListByUser(ctx context.Context, userID string) ([]models.PurchaseRequest, error)
	HasPending(ctx context.Context, userID string, bookID, customizationID *int64) (bool, error)
	// Process transitions a pending request and, on approval, inserts the
	// matching library item in the same transaction.
	Process(ctx context.Context, p *models.PurchaseRequest, status string) error
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, p *models.PurchaseRequest) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create purchase request: %w", err)
	}
	return nil
}

func (r *purchaseRepository) GetByID(ctx context.Context, id int64) (*models.PurchaseRequest, error) {
	var p models.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Preload("Customization").
		Preload("Customization.Book").
		First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *purchaseRepository) ListAll(ctx context.Context) ([]models.PurchaseRequest, error) {
	var list []models.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Book").
		Preload("Customization").
		Preload("Customization.Book").
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *purchaseRepository) ListByUser(ctx context.Context, userID string) ([]models.PurchaseRequest, error) {
	var list []models.PurchaseRequest
	if err := r.db.WithContext(ctx).
		Preload("Book").
		Preload("Customization").
		Preload("Customization.Book").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *purchaseRepository) HasPending(ctx context.Context, userID string, bookID, customizationID *int64) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&models.PurchaseRequest{}).
		Where("user_id = ? AND status = ?", userID, models.PurchaseStatusPending)
	if bookID != nil {
		db = db.Where("book_id = ?", *bookID)
	}
	if customizationID != nil {
		db = db.Where("customization_id = ?", *customizationID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *purchaseRepository) Process(ctx context.Context, p *models.PurchaseRequest, status string) error {
	now := time.Now()
	tx := r.db.WithContext(ctx).Begin()

	if err := tx.Model(&models.PurchaseRequest{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{"status": status, "processed_at": now}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("update purchase status: %w", err)
	}

	if status == models.PurchaseStatusApproved {
		item := &models.LibraryItem{
			UserID:          p.UserID,
			BookID:          p.BookID,
			CustomizationID: p.CustomizationID,
			AddedAt:         now,
		}
		if err := tx.Create(item).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("create library item: %w", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return err
	}

	p.Status = status
	p.ProcessedAt = &now
	return nil
}
