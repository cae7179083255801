package service

import (
	"context"
	"errors"

	"storynest/internal/http-api/dto"
	"storynest/internal/http-api/models"
	"storynest/internal/http-api/repository"
)

var (
	ErrPurchaseNotFound   = errors.New("purchase request not found")
	ErrAlreadyProcessed   = errors.New("purchase request already processed")
	ErrInvalidSelection   = errors.New("exactly one of book or customization must be selected")
	ErrDuplicateRequest   = errors.New("a pending request for this item already exists")
	ErrUnknownAction      = errors.New("unknown action")
)

type PurchaseService interface {
	Create(ctx context.Context, userID string, req dto.CreatePurchaseRequest) (*models.PurchaseRequest, error)
	ListMine(ctx context.Context, userID string) ([]models.PurchaseRequest, error)
	ListAll(ctx context.Context) ([]models.PurchaseRequest, error)
	Process(ctx context.Context, id int64, action string) (*models.PurchaseRequest, error)
	Library(ctx context.Context, userID string) ([]models.LibraryItem, error)
}

type purchaseService struct {
	repo              repository.PurchaseRepository
	libraryRepo       repository.LibraryRepository
	bookRepo          repository.BookRepository
	customizationRepo repository.CustomizationRepository
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	libraryRepo repository.LibraryRepository,
	bookRepo repository.BookRepository,
	customizationRepo repository.CustomizationRepository,
) PurchaseService {
	return &purchaseService{
		repo:              repo,
		libraryRepo:       libraryRepo,
		bookRepo:          bookRepo,
		customizationRepo: customizationRepo,
	}
}

// Create submits a purchase request for a catalog book or one of the caller's
// own customizations. One pending request per item per user.
func (s *purchaseService) Create(ctx context.Context, userID string, req dto.CreatePurchaseRequest) (*models.PurchaseRequest, error) {
	if (req.BookID == nil) == (req.CustomizationID == nil) {
		return nil, ErrInvalidSelection
	}

	if req.BookID != nil {
		if _, err := s.bookRepo.GetByID(ctx, *req.BookID); err != nil {
			return nil, ErrBookNotFound
		}
	}

	if req.CustomizationID != nil {
		custom, err := s.customizationRepo.GetByID(ctx, *req.CustomizationID)
		if err != nil {
			return nil, ErrCustomizationNotFound
		}
		if custom.UserID != userID {
			return nil, ErrNotOwner
		}
	}

	pending, err := s.repo.HasPending(ctx, userID, req.BookID, req.CustomizationID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, ErrDuplicateRequest
	}

	purchase := &models.PurchaseRequest{
		UserID:          userID,
		BookID:          req.BookID,
		CustomizationID: req.CustomizationID,
		Status:          models.PurchaseStatusPending,
	}

	if err := s.repo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *purchaseService) ListMine(ctx context.Context, userID string) ([]models.PurchaseRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *purchaseService) ListAll(ctx context.Context) ([]models.PurchaseRequest, error) {
	return s.repo.ListAll(ctx)
}

// Process applies an admin decision to a pending request. Approval creates
// the library item in the same transaction; a processed request never
// transitions again.
func (s *purchaseService) Process(ctx context.Context, id int64, action string) (*models.PurchaseRequest, error) {
	var status string
	switch action {
	case "approve":
		status = models.PurchaseStatusApproved
	case "reject":
		status = models.PurchaseStatusRejected
	default:
		return nil, ErrUnknownAction
	}

	purchase, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrPurchaseNotFound
	}

	if purchase.Status != models.PurchaseStatusPending {
		return nil, ErrAlreadyProcessed
	}

	if err := s.repo.Process(ctx, purchase, status); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *purchaseService) Library(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	return s.libraryRepo.List(ctx, userID)
}
