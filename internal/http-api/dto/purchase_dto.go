package dto

import (
	"time"

	"storynest/internal/http-api/models"
)

// CreatePurchaseRequest: payload for submitting a purchase request.
// Exactly one of book_id / customization_id must be set.
type CreatePurchaseRequest struct {
	BookID          *int64 `json:"book_id,omitempty"`
	CustomizationID *int64 `json:"customization_id,omitempty"`
}

// ProcessPurchaseRequest: admin decision on a pending request
type ProcessPurchaseRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}

// PurchaseResponse: view of a purchase request
type PurchaseResponse struct {
	ID              int64                  `json:"id"`
	UserID          string                 `json:"user_id"`
	BookID          *int64                 `json:"book_id,omitempty"`
	CustomizationID *int64                 `json:"customization_id,omitempty"`
	Status          string                 `json:"status"`
	CreatedAt       time.Time              `json:"created_at"`
	ProcessedAt     *time.Time             `json:"processed_at,omitempty"`
	User            *UserResponse          `json:"user,omitempty"`
	Book            *BookResponse          `json:"book,omitempty"`
	Customization   *CustomizationResponse `json:"customization,omitempty"`
}

// FromPurchaseModel converts a PurchaseRequest model into its response shape.
func FromPurchaseModel(p models.PurchaseRequest) PurchaseResponse {
	resp := PurchaseResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		BookID:          p.BookID,
		CustomizationID: p.CustomizationID,
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		ProcessedAt:     p.ProcessedAt,
	}
	if p.User != nil {
		user := FromUserModel(*p.User)
		resp.User = &user
	}
	if p.Book != nil {
		book := FromBookModel(*p.Book)
		resp.Book = &book
	}
	if p.Customization != nil {
		custom := FromCustomizationModel(*p.Customization)
		resp.Customization = &custom
	}
	return resp
}

// PurchaseListResponse: wrapper for purchase request listings
type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Total int                `json:"total"`
}

// LibraryItemResponse: view of an owned book or customization.
// The book/customization objects are always embedded, never bare ids.
type LibraryItemResponse struct {
	ID            int64                  `json:"id"`
	Book          *BookResponse          `json:"book,omitempty"`
	Customization *CustomizationResponse `json:"customization,omitempty"`
	AddedAt       time.Time              `json:"added_at"`
}

// FromLibraryItemModel converts a LibraryItem model into its response shape.
func FromLibraryItemModel(item models.LibraryItem) LibraryItemResponse {
	resp := LibraryItemResponse{
		ID:      item.ID,
		AddedAt: item.AddedAt,
	}
	if item.Book != nil {
		book := FromBookModel(*item.Book)
		resp.Book = &book
	}
	if item.Customization != nil {
		custom := FromCustomizationModel(*item.Customization)
		resp.Customization = &custom
	}
	return resp
}

// LibraryListResponse: wrapper for the user's library
type LibraryListResponse struct {
	Items []LibraryItemResponse `json:"items"`
	Total int                   `json:"total"`
}
