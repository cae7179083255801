package service

import (
	"context"
	"testing"
	"time"

	"storynest/internal/http-api/dto"
	"storynest/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, p *models.PurchaseRequest) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaseRepository) GetByID(ctx context.Context, id int64) (*models.PurchaseRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PurchaseRequest), args.Error(1)
}

func (m *MockPurchaseRepository) ListAll(ctx context.Context) ([]models.PurchaseRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.PurchaseRequest), args.Error(1)
}

func (m *MockPurchaseRepository) ListByUser(ctx context.Context, userID string) ([]models.PurchaseRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.PurchaseRequest), args.Error(1)
}

func (m *MockPurchaseRepository) HasPending(ctx context.Context, userID string, bookID, customizationID *int64) (bool, error) {
	args := m.Called(ctx, userID, bookID, customizationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockPurchaseRepository) Process(ctx context.Context, p *models.PurchaseRequest, status string) error {
	args := m.Called(ctx, p, status)
	if args.Error(0) == nil {
		now := time.Now()
		p.Status = status
		p.ProcessedAt = &now
	}
	return args.Error(0)
}

type MockLibraryRepository struct {
	mock.Mock
}

func (m *MockLibraryRepository) List(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.LibraryItem), args.Error(1)
}

func (m *MockLibraryRepository) HasBook(ctx context.Context, userID string, bookID int64) (bool, error) {
	args := m.Called(ctx, userID, bookID)
	return args.Bool(0), args.Error(1)
}

type MockBookRepository struct {
	mock.Mock
}

func (m *MockBookRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Book, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Book), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Book), args.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, b *models.Book) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookRepository) Search(ctx context.Context, filters dto.SearchBooksRequest) ([]models.Book, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]models.Book), args.Error(1)
}

type MockCustomizationRepository struct {
	mock.Mock
}

func (m *MockCustomizationRepository) Create(ctx context.Context, c *models.Customization) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomizationRepository) GetByID(ctx context.Context, id int64) (*models.Customization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Customization), args.Error(1)
}

func (m *MockCustomizationRepository) ListByUser(ctx context.Context, userID string) ([]models.Customization, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Customization), args.Error(1)
}

func (m *MockCustomizationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newPurchaseServiceForTest() (PurchaseService, *MockPurchaseRepository, *MockLibraryRepository, *MockBookRepository, *MockCustomizationRepository) {
	purchaseRepo := new(MockPurchaseRepository)
	libraryRepo := new(MockLibraryRepository)
	bookRepo := new(MockBookRepository)
	customizationRepo := new(MockCustomizationRepository)
	svc := NewPurchaseService(purchaseRepo, libraryRepo, bookRepo, customizationRepo)
	return svc, purchaseRepo, libraryRepo, bookRepo, customizationRepo
}

func TestCreatePurchase_Book(t *testing.T) {
	svc, purchaseRepo, _, bookRepo, _ := newPurchaseServiceForTest()
	ctx := context.Background()
	bookID := int64(7)

	bookRepo.On("GetByID", ctx, bookID).Return(&models.Book{ID: bookID, Title: "The Moon Trip"}, nil)
	purchaseRepo.On("HasPending", ctx, "user-1", &bookID, (*int64)(nil)).Return(false, nil)
	purchaseRepo.On("Create", ctx, mock.AnythingOfType("*models.PurchaseRequest")).Return(nil)

	purchase, err := svc.Create(ctx, "user-1", dto.CreatePurchaseRequest{BookID: &bookID})
	assert.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusPending, purchase.Status)
	assert.Equal(t, "user-1", purchase.UserID)
	assert.Equal(t, &bookID, purchase.BookID)

	purchaseRepo.AssertExpectations(t)
	bookRepo.AssertExpectations(t)
}

func TestCreatePurchase_RejectsBothOrNeither(t *testing.T) {
	svc, _, _, _, _ := newPurchaseServiceForTest()
	ctx := context.Background()
	bookID, customizationID := int64(1), int64(2)

	_, err := svc.Create(ctx, "user-1", dto.CreatePurchaseRequest{})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	_, err = svc.Create(ctx, "user-1", dto.CreatePurchaseRequest{BookID: &bookID, CustomizationID: &customizationID})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestCreatePurchase_ForeignCustomization(t *testing.T) {
	svc, _, _, _, customizationRepo := newPurchaseServiceForTest()
	ctx := context.Background()
	customizationID := int64(3)

	customizationRepo.On("GetByID", ctx, customizationID).
		Return(&models.Customization{ID: customizationID, UserID: "someone-else"}, nil)

	_, err := svc.Create(ctx, "user-1", dto.CreatePurchaseRequest{CustomizationID: &customizationID})
	assert.ErrorIs(t, err, ErrNotOwner)
	customizationRepo.AssertExpectations(t)
}

func TestCreatePurchase_Duplicate(t *testing.T) {
	svc, purchaseRepo, _, bookRepo, _ := newPurchaseServiceForTest()
	ctx := context.Background()
	bookID := int64(7)

	bookRepo.On("GetByID", ctx, bookID).Return(&models.Book{ID: bookID}, nil)
	purchaseRepo.On("HasPending", ctx, "user-1", &bookID, (*int64)(nil)).Return(true, nil)

	_, err := svc.Create(ctx, "user-1", dto.CreatePurchaseRequest{BookID: &bookID})
	assert.ErrorIs(t, err, ErrDuplicateRequest)
	purchaseRepo.AssertNotCalled(t, "Create")
}

func TestProcessPurchase_Approve(t *testing.T) {
	svc, purchaseRepo, _, _, _ := newPurchaseServiceForTest()
	ctx := context.Background()
	bookID := int64(7)

	pending := &models.PurchaseRequest{
		ID:     11,
		UserID: "user-1",
		BookID: &bookID,
		Status: models.PurchaseStatusPending,
	}
	purchaseRepo.On("GetByID", ctx, int64(11)).Return(pending, nil)
	purchaseRepo.On("Process", ctx, pending, models.PurchaseStatusApproved).Return(nil)

	purchase, err := svc.Process(ctx, 11, "approve")
	assert.NoError(t, err)
	assert.Equal(t, models.PurchaseStatusApproved, purchase.Status)
	assert.NotNil(t, purchase.ProcessedAt)
	purchaseRepo.AssertExpectations(t)
}

func TestProcessPurchase_AlreadyProcessed(t *testing.T) {
	svc, purchaseRepo, _, _, _ := newPurchaseServiceForTest()
	ctx := context.Background()

	processed := &models.PurchaseRequest{ID: 11, Status: models.PurchaseStatusApproved}
	purchaseRepo.On("GetByID", ctx, int64(11)).Return(processed, nil)

	_, err := svc.Process(ctx, 11, "reject")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
	purchaseRepo.AssertNotCalled(t, "Process")
}

func TestProcessPurchase_UnknownAction(t *testing.T) {
	svc, purchaseRepo, _, _, _ := newPurchaseServiceForTest()

	_, err := svc.Process(context.Background(), 11, "postpone")
	assert.ErrorIs(t, err, ErrUnknownAction)
	purchaseRepo.AssertNotCalled(t, "GetByID")
}

func TestLibrary(t *testing.T) {
	svc, _, libraryRepo, _, _ := newPurchaseServiceForTest()
	ctx := context.Background()
	bookID := int64(7)

	items := []models.LibraryItem{
		{ID: 1, UserID: "user-1", BookID: &bookID, Book: &models.Book{ID: bookID, Title: "The Moon Trip"}},
	}
	libraryRepo.On("List", ctx, "user-1").Return(items, nil)

	got, err := svc.Library(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "The Moon Trip", got[0].Book.Title)
	libraryRepo.AssertExpectations(t)
}
