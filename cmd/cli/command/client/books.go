package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

// Catalog endpoints plus the personalization flow.

func (c *Client) ListBooks(ctx context.Context, page, pageSize int) (*PaginatedBooksResponse, error) {
	var resp PaginatedBooksResponse
	path := fmt.Sprintf("/books/books/?page=%d&page_size=%d", page, pageSize)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetBook(ctx context.Context, id int64) (*BookResponse, error) {
	var resp BookResponse
	path := fmt.Sprintf("/books/books/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SearchBooks(ctx context.Context, req *SearchBooksRequest) ([]BookResponse, error) {
	var resp []BookResponse
	if err := c.do(ctx, http.MethodPost, "/books/search_books/", req, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AddBook creates a catalog entry from metadata fields and optional content
// and cover files (paths on disk, empty string to skip).
func (c *Client) AddBook(ctx context.Context, fields map[string]string, filePath, coverPath string) (*BookResponse, error) {
	files := map[string]string{}
	if filePath != "" {
		files["file"] = filePath
	}
	if coverPath != "" {
		files["cover"] = coverPath
	}

	var resp BookResponse
	if err := c.PostMultipart(ctx, http.MethodPost, "/books/addbook/", fields, files, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateBook(ctx context.Context, id int64, fields map[string]string, filePath, coverPath string) (*BookResponse, error) {
	files := map[string]string{}
	if filePath != "" {
		files["file"] = filePath
	}
	if coverPath != "" {
		files["cover"] = coverPath
	}

	var resp BookResponse
	path := fmt.Sprintf("/books/update_book/%d/", id)
	if err := c.PostMultipart(ctx, http.MethodPatch, path, fields, files, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/books/delete_book/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// DownloadBook streams the book content into w; the caller must own the
// book via their library (or be an admin).
func (c *Client) DownloadBook(ctx context.Context, id int64, w io.Writer) (string, error) {
	return c.Download(ctx, fmt.Sprintf("/books/bookfile/%d/", id), w)
}

func (c *Client) DownloadCover(ctx context.Context, id int64, w io.Writer) (string, error) {
	return c.Download(ctx, fmt.Sprintf("/books/cover/%d/", id), w)
}

// Customize creates a personalized variant of a base book. childImagePath
// may be empty when no photo is supplied.
func (c *Client) Customize(ctx context.Context, bookID int64, childName string, childAge int, childImagePath string) (*CustomizationResponse, error) {
	fields := map[string]string{
		"book_id":    strconv.FormatInt(bookID, 10),
		"child_name": childName,
		"child_age":  strconv.Itoa(childAge),
	}
	files := map[string]string{}
	if childImagePath != "" {
		files["child_image"] = childImagePath
	}

	var resp CustomizationResponse
	if err := c.PostMultipart(ctx, http.MethodPost, "/books/customize/", fields, files, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListCustomizations(ctx context.Context) (*CustomizationListResponse, error) {
	var resp CustomizationListResponse
	if err := c.do(ctx, http.MethodGet, "/books/listcustomizations/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetCustomization(ctx context.Context, id int64) (*CustomizationResponse, error) {
	var resp CustomizationResponse
	path := fmt.Sprintf("/books/customizations/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) DeleteCustomization(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/books/customizations/%d/delete/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) DownloadCustomization(ctx context.Context, id int64, w io.Writer) (string, error) {
	return c.Download(ctx, fmt.Sprintf("/books/customizations/%d/file/", id), w)
}
