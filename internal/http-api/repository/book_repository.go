package repository

import (
	"context"
	"fmt"
	"strings"

	"storynest/internal/http-api/dto"
	"storynest/internal/http-api/models"

	"gorm.io/gorm"
)

// BookRepository defines the interface for catalog data operations.
type BookRepository interface {
	GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	Update(ctx context.Context, b *models.Book) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filters dto.SearchBooksRequest) ([]models.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	var list []models.Book
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

func (r *bookRepository) Update(ctx context.Context, b *models.Book) error {
	if err := r.db.WithContext(ctx).Save(b).Error; err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Book{}, id).Error; err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// Search performs case-insensitive partial match on title and description,
// narrowed by the optional category/age/gender/price filters. The query is
// split into tokens and each token must appear in at least one text field.
func (r *bookRepository) Search(ctx context.Context, filters dto.SearchBooksRequest) ([]models.Book, error) {
	var list []models.Book
	db := r.db.WithContext(ctx)

	tokens := strings.Fields(filters.Query)
	clauses := make([]string, 0, len(tokens))
	args := make([]interface{}, 0, len(tokens)*2)
	for _, t := range tokens {
		p := "%" + t + "%"
		clauses = append(clauses, "(title ILIKE ? OR COALESCE(description,'') ILIKE ?)")
		args = append(args, p, p)
	}
	if len(clauses) > 0 {
		db = db.Where(strings.Join(clauses, " AND "), args...)
	}

	if filters.Category != "" {
		db = db.Where("category = ?", filters.Category)
	}
	if filters.Age != "" {
		db = db.Where("age = ?", filters.Age)
	}
	if filters.Gender != "" {
		db = db.Where("gender = ? OR gender = 'any'", filters.Gender)
	}
	if filters.MinPrice != nil {
		db = db.Where("price >= ?", *filters.MinPrice)
	}
	if filters.MaxPrice != nil {
		db = db.Where("price <= ?", *filters.MaxPrice)
	}

	if err := db.Order("created_at desc").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return list, nil
}
