package client

import (
	"context"
	"fmt"
	"net/http"
)

// Purchase workflow and library endpoints.

// RequestBook submits a purchase request for a catalog book.
func (c *Client) RequestBook(ctx context.Context, bookID int64) (*PurchaseResponse, error) {
	req := CreatePurchaseRequest{BookID: &bookID}
	return c.createPurchase(ctx, &req)
}

// RequestCustomization submits a purchase request for one of the caller's
// personalized books.
func (c *Client) RequestCustomization(ctx context.Context, customizationID int64) (*PurchaseResponse, error) {
	req := CreatePurchaseRequest{CustomizationID: &customizationID}
	return c.createPurchase(ctx, &req)
}

func (c *Client) createPurchase(ctx context.Context, req *CreatePurchaseRequest) (*PurchaseResponse, error) {
	var resp PurchaseResponse
	if err := c.do(ctx, http.MethodPost, "/buy/purrequests/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListMyRequests(ctx context.Context) (*PurchaseListResponse, error) {
	var resp PurchaseListResponse
	if err := c.do(ctx, http.MethodGet, "/buy/purrequests/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListAllRequests(ctx context.Context) (*PurchaseListResponse, error) {
	var resp PurchaseListResponse
	if err := c.do(ctx, http.MethodGet, "/buy/admin/requests/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProcessRequest approves or rejects a pending purchase request.
func (c *Client) ProcessRequest(ctx context.Context, id int64, action string) (*PurchaseResponse, error) {
	req := ProcessPurchaseRequest{Action: action}
	var resp PurchaseResponse
	path := fmt.Sprintf("/buy/admin/requests/%d/process/", id)
	if err := c.do(ctx, http.MethodPost, path, &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Library(ctx context.Context) (*LibraryListResponse, error) {
	var resp LibraryListResponse
	if err := c.do(ctx, http.MethodGet, "/buy/userlibrary/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
