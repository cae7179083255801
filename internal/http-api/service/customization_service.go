package service

import (
	"context"
	"errors"
	"mime/multipart"
	"path/filepath"

	"storynest/internal/http-api/dto"
	"storynest/internal/http-api/models"
	"storynest/internal/http-api/repository"
	"storynest/internal/storage"
)

var (
	ErrCustomizationNotFound = errors.New("customization not found")
	ErrNotOwner              = errors.New("not the owner of this customization")
)

type CustomizationService interface {
	Create(ctx context.Context, userID string, req dto.CustomizeRequest, childImage *multipart.FileHeader) (*models.Customization, error)
	List(ctx context.Context, userID string) ([]models.Customization, error)
	Get(ctx context.Context, id int64, userID string, isAdmin bool) (*models.Customization, error)
	Delete(ctx context.Context, id int64, userID string, isAdmin bool) error

	FilePath(ctx context.Context, id int64, userID string, isAdmin bool) (string, error)
	ChildImagePath(ctx context.Context, id int64, userID string, isAdmin bool) (string, error)
}

type customizationService struct {
	repo     repository.CustomizationRepository
	bookRepo repository.BookRepository
	files    *storage.FileStore
}

func NewCustomizationService(
	repo repository.CustomizationRepository,
	bookRepo repository.BookRepository,
	files *storage.FileStore,
) CustomizationService {
	return &customizationService{
		repo:     repo,
		bookRepo: bookRepo,
		files:    files,
	}
}

// Create stores the child's photo and produces the personalized book file
// for the given base book.
func (s *customizationService) Create(ctx context.Context, userID string, req dto.CustomizeRequest, childImage *multipart.FileHeader) (*models.Customization, error) {
	book, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		return nil, ErrBookNotFound
	}

	custom := &models.Customization{
		BookID:    book.ID,
		UserID:    userID,
		ChildName: req.ChildName,
		ChildAge:  req.ChildAge,
	}

	if childImage != nil {
		path, err := s.files.SaveUpload(childImage)
		if err != nil {
			return nil, err
		}
		custom.ChildImagePath = path
	}

	// The personalized artifact starts as a copy of the base book file; the
	// rendering pipeline replaces it once generation completes.
	if book.FilePath != "" {
		src, err := s.files.Open(book.FilePath)
		if err == nil {
			defer src.Close()
			generated, err := s.files.Save(src, filepath.Ext(book.FilePath))
			if err != nil {
				return nil, err
			}
			custom.FilePath = generated
		}
	}

	if err := s.repo.Create(ctx, custom); err != nil {
		return nil, err
	}

	custom.Book = book
	return custom, nil
}

func (s *customizationService) List(ctx context.Context, userID string) ([]models.Customization, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *customizationService) Get(ctx context.Context, id int64, userID string, isAdmin bool) (*models.Customization, error) {
	custom, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrCustomizationNotFound
	}
	if !isAdmin && custom.UserID != userID {
		return nil, ErrNotOwner
	}
	return custom, nil
}

func (s *customizationService) Delete(ctx context.Context, id int64, userID string, isAdmin bool) error {
	custom, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrCustomizationNotFound
	}
	if !isAdmin && custom.UserID != userID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.files.Delete(custom.FilePath)
	s.files.Delete(custom.ChildImagePath)
	return nil
}

func (s *customizationService) FilePath(ctx context.Context, id int64, userID string, isAdmin bool) (string, error) {
	custom, err := s.Get(ctx, id, userID, isAdmin)
	if err != nil {
		return "", err
	}
	if custom.FilePath == "" {
		return "", ErrFileMissing
	}
	return s.files.Path(custom.FilePath), nil
}

func (s *customizationService) ChildImagePath(ctx context.Context, id int64, userID string, isAdmin bool) (string, error) {
	custom, err := s.Get(ctx, id, userID, isAdmin)
	if err != nil {
		return "", err
	}
	if custom.ChildImagePath == "" {
		return "", ErrFileMissing
	}
	return s.files.Path(custom.ChildImagePath), nil
}
