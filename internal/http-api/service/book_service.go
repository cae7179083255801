package service

import (
	"context"
	"errors"
	"mime/multipart"

	"storynest/internal/cache"
	"storynest/internal/http-api/dto"
	"storynest/internal/http-api/models"
	"storynest/internal/http-api/repository"
	"storynest/internal/storage"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrFileMissing  = errors.New("file not available")
	ErrNotInLibrary = errors.New("book not in your library")
)

type BookService interface {
	List(ctx context.Context, page, pageSize int) (*dto.PaginatedBooksResponse, error)
	Get(ctx context.Context, id int64) (*dto.BookResponse, error)
	Create(ctx context.Context, req dto.CreateBookRequest, file, cover *multipart.FileHeader) (*models.Book, error)
	Update(ctx context.Context, id int64, req dto.UpdateBookRequest, file, cover *multipart.FileHeader) (*models.Book, error)
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, req dto.SearchBooksRequest) ([]models.Book, error)

	// binary endpoints: resolve a stored file to a disk path for serving
	CoverPath(ctx context.Context, id int64) (string, error)
	FilePath(ctx context.Context, id int64, userID string, isAdmin bool) (string, error)
}

type bookService struct {
	repo        repository.BookRepository
	libraryRepo repository.LibraryRepository
	files       *storage.FileStore
	cache       *cache.BookCache
}

func NewBookService(
	repo repository.BookRepository,
	libraryRepo repository.LibraryRepository,
	files *storage.FileStore,
	bookCache *cache.BookCache,
) BookService {
	return &bookService{
		repo:        repo,
		libraryRepo: libraryRepo,
		files:       files,
		cache:       bookCache,
	}
}

func (s *bookService) List(ctx context.Context, page, pageSize int) (*dto.PaginatedBooksResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	if cached, ok := s.cache.GetList(ctx, page, pageSize); ok {
		return cached, nil
	}

	books, total, err := s.repo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.BookResponse, 0, len(books))
	for _, b := range books {
		data = append(data, dto.FromBookModel(b))
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	resp := &dto.PaginatedBooksResponse{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}

	s.cache.SetList(ctx, page, pageSize, resp)
	return resp, nil
}

func (s *bookService) Get(ctx context.Context, id int64) (*dto.BookResponse, error) {
	if cached, ok := s.cache.GetDetail(ctx, id); ok {
		return cached, nil
	}

	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookNotFound
	}

	resp := dto.FromBookModel(*book)
	s.cache.SetDetail(ctx, id, &resp)
	return &resp, nil
}

func (s *bookService) Create(ctx context.Context, req dto.CreateBookRequest, file, cover *multipart.FileHeader) (*models.Book, error) {
	book := &models.Book{
		Title:       req.Title,
		Price:       req.Price,
		Category:    req.Category,
		Age:         req.Age,
		Gender:      req.Gender,
		Description: req.Description,
	}

	if file != nil {
		path, err := s.files.SaveUpload(file)
		if err != nil {
			return nil, err
		}
		book.FilePath = path
	}
	if cover != nil {
		path, err := s.files.SaveUpload(cover)
		if err != nil {
			return nil, err
		}
		book.CoverPath = path
	}

	if err := s.repo.Create(ctx, book); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, book.ID)
	return book, nil
}

func (s *bookService) Update(ctx context.Context, id int64, req dto.UpdateBookRequest, file, cover *multipart.FileHeader) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrBookNotFound
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Price != nil {
		book.Price = *req.Price
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.Age != nil {
		book.Age = *req.Age
	}
	if req.Gender != nil {
		book.Gender = *req.Gender
	}
	if req.Rate != nil {
		book.Rate = *req.Rate
	}
	if req.Description != nil {
		book.Description = *req.Description
	}

	// Replacing a file drops the previous one from the store.
	if file != nil {
		path, err := s.files.SaveUpload(file)
		if err != nil {
			return nil, err
		}
		if book.FilePath != "" {
			s.files.Delete(book.FilePath)
		}
		book.FilePath = path
	}
	if cover != nil {
		path, err := s.files.SaveUpload(cover)
		if err != nil {
			return nil, err
		}
		if book.CoverPath != "" {
			s.files.Delete(book.CoverPath)
		}
		book.CoverPath = path
	}

	if err := s.repo.Update(ctx, book); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, id)
	return book, nil
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return ErrBookNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.files.Delete(book.FilePath)
	s.files.Delete(book.CoverPath)
	s.cache.Invalidate(ctx, id)
	return nil
}

func (s *bookService) Search(ctx context.Context, req dto.SearchBooksRequest) ([]models.Book, error) {
	return s.repo.Search(ctx, req)
}

// CoverPath resolves a book's cover image; covers are public.
func (s *bookService) CoverPath(ctx context.Context, id int64) (string, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", ErrBookNotFound
	}
	if book.CoverPath == "" {
		return "", ErrFileMissing
	}
	return s.files.Path(book.CoverPath), nil
}

// FilePath resolves a book's content file. Only admins and users who own the
// book through their library may download it.
func (s *bookService) FilePath(ctx context.Context, id int64, userID string, isAdmin bool) (string, error) {
	book, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", ErrBookNotFound
	}
	if book.FilePath == "" {
		return "", ErrFileMissing
	}

	if !isAdmin {
		owned, err := s.libraryRepo.HasBook(ctx, userID, id)
		if err != nil {
			return "", err
		}
		if !owned {
			return "", ErrNotInLibrary
		}
	}

	return s.files.Path(book.FilePath), nil
}
