package dto

import (
	"time"

	"storynest/internal/http-api/models"
)

// CustomizeRequest: multipart form fields for personalizing a book.
// The child's photo arrives as a file part next to these fields.
type CustomizeRequest struct {
	BookID    int64  `form:"book_id" binding:"required"`
	ChildName string `form:"child_name" binding:"required,min=1,max=100"`
	ChildAge  int    `form:"child_age" binding:"gte=0,lte=18"`
}

// CustomizationResponse: view of a personalized book
type CustomizationResponse struct {
	ID            int64         `json:"id"`
	BookID        int64         `json:"book_id"`
	Book          *BookResponse `json:"book,omitempty"`
	ChildName     string        `json:"child_name"`
	ChildAge      int           `json:"child_age"`
	HasFile       bool          `json:"has_file"`
	HasChildImage bool          `json:"has_child_image"`
	CreatedAt     time.Time     `json:"created_at"`
}

// FromCustomizationModel converts a Customization model into its response shape.
func FromCustomizationModel(c models.Customization) CustomizationResponse {
	resp := CustomizationResponse{
		ID:            c.ID,
		BookID:        c.BookID,
		ChildName:     c.ChildName,
		ChildAge:      c.ChildAge,
		HasFile:       c.FilePath != "",
		HasChildImage: c.ChildImagePath != "",
		CreatedAt:     c.CreatedAt,
	}
	if c.Book != nil {
		book := FromBookModel(*c.Book)
		resp.Book = &book
	}
	return resp
}

// CustomizationListResponse: wrapper for a user's customizations
type CustomizationListResponse struct {
	Items []CustomizationResponse `json:"items"`
	Total int                     `json:"total"`
}
