package client

import "time"

// Request/response mirrors of the API server DTOs. The CLI keeps its own
// copies so it only depends on the wire format, not on server internals.

type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type RegisterResponse struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"is_admin"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshResponse struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RevokeTokenResponse struct {
	Message string `json:"message"`
}

type UserResponse struct {
	ID        string     `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	IsAdmin   bool       `json:"is_admin"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Address   *string `json:"address,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type AddUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type UpdateUserRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Address   *string `json:"address,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	IsAdmin   *bool   `json:"is_admin,omitempty"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}

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

type PaginatedBooksResponse struct {
	Data       []BookResponse `json:"data"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	Total      int64          `json:"total"`
	TotalPages int            `json:"total_pages"`
}

type SearchBooksRequest struct {
	Query    string   `json:"query,omitempty"`
	Category string   `json:"category,omitempty"`
	Age      string   `json:"age,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
}

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

type CustomizationListResponse struct {
	Items []CustomizationResponse `json:"items"`
	Total int                     `json:"total"`
}

type CreatePurchaseRequest struct {
	BookID          *int64 `json:"book_id,omitempty"`
	CustomizationID *int64 `json:"customization_id,omitempty"`
}

type ProcessPurchaseRequest struct {
	Action string `json:"action"`
}

type PurchaseResponse struct {
	ID              int64                  `json:"id"`
	UserID          string                 `json:"user_id"`
	BookID          *int64                 `json:"book_id,omitempty"`
	CustomizationID *int64                 `json:"customization_id,omitempty"`
	Status          string                 `json:"status"`
	User            *UserResponse          `json:"user,omitempty"`
	Book            *BookResponse          `json:"book,omitempty"`
	Customization   *CustomizationResponse `json:"customization,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
	ProcessedAt     *time.Time             `json:"processed_at,omitempty"`
}

type PurchaseListResponse struct {
	Items []PurchaseResponse `json:"items"`
	Total int                `json:"total"`
}

type LibraryItemResponse struct {
	ID            int64                  `json:"id"`
	Book          *BookResponse          `json:"book,omitempty"`
	Customization *CustomizationResponse `json:"customization,omitempty"`
	AddedAt       time.Time              `json:"added_at"`
}

type LibraryListResponse struct {
	Items []LibraryItemResponse `json:"items"`
	Total int                   `json:"total"`
}
