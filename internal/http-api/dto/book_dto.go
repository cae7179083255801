package dto

import (
	"time"

	"storynest/internal/http-api/models"
)

// BookResponse: catalog view of a book. File contents are served by the
// binary endpoints; here we only expose whether they exist.
type BookResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Age         string    `json:"age"`
	Gender      string    `json:"gender"`
	Rate        float64   `json:"rate"`
	Description string    `json:"description"`
	HasFile     bool      `json:"has_file"`
	HasCover    bool      `json:"has_cover"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromBookModel converts a Book model into its response shape.
func FromBookModel(b models.Book) BookResponse {
	return BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		Price:       b.Price,
		Category:    b.Category,
		Age:         b.Age,
		Gender:      b.Gender,
		Rate:        b.Rate,
		Description: b.Description,
		HasFile:     b.FilePath != "",
		HasCover:    b.CoverPath != "",
		CreatedAt:   b.CreatedAt,
	}
}

// CreateBookRequest: multipart form fields for adding a book.
// The book file and cover image arrive as file parts next to these fields.
type CreateBookRequest struct {
	Title       string  `form:"title" binding:"required"`
	Price       float64 `form:"price" binding:"required,gte=0"`
	Category    string  `form:"category"`
	Age         string  `form:"age"`
	Gender      string  `form:"gender"`
	Description string  `form:"description"`
}

// UpdateBookRequest: partial update of a book's metadata
type UpdateBookRequest struct {
	Title       *string  `form:"title" json:"title,omitempty"`
	Price       *float64 `form:"price" json:"price,omitempty"`
	Category    *string  `form:"category" json:"category,omitempty"`
	Age         *string  `form:"age" json:"age,omitempty"`
	Gender      *string  `form:"gender" json:"gender,omitempty"`
	Rate        *float64 `form:"rate" json:"rate,omitempty"`
	Description *string  `form:"description" json:"description,omitempty"`
}

// SearchBooksRequest: catalog search filters
type SearchBooksRequest struct {
	Query    string   `json:"query"`
	Category string   `json:"category"`
	Age      string   `json:"age"`
	Gender   string   `json:"gender"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

// PaginatedBooksResponse: page of catalog results
type PaginatedBooksResponse struct {
	Data       []BookResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
}
