package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Account and session endpoints. Login and Register talk to the API without
// a bearer token; everything else goes through the authenticated core.

func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "/user/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login obtains a token pair and installs it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	req := LoginRequest{Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/user/login/", &req, &resp); err != nil {
		return nil, err
	}
	c.SetTokens(resp.AccessToken, resp.RefreshToken)
	return &resp, nil
}

// Logout revokes the refresh token server-side and drops the local pair.
func (c *Client) Logout(ctx context.Context) error {
	_, refresh := c.Tokens()
	defer c.ClearTokens()

	if refresh == "" {
		return nil
	}
	body := map[string]string{"refresh": refresh}
	var resp RevokeTokenResponse
	return c.do(ctx, http.MethodPost, "/user/token/revoke/", body, &resp)
}

func (c *Client) Profile(ctx context.Context) (*UserResponse, error) {
	var resp UserResponse
	if err := c.do(ctx, http.MethodGet, "/user/profile/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*UserResponse, error) {
	var resp UserResponse
	if err := c.do(ctx, http.MethodPut, "/user/updateprofile/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	req := ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	return c.do(ctx, http.MethodPatch, "/user/changepassword/", &req, nil)
}

func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/user/deleteaccount/", nil, nil); err != nil {
		return err
	}
	c.ClearTokens()
	return nil
}

// Admin account management.

func (c *Client) ListUsers(ctx context.Context) (*UserListResponse, error) {
	var resp UserListResponse
	if err := c.do(ctx, http.MethodGet, "/user/listusers/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListAdmins(ctx context.Context) (*UserListResponse, error) {
	var resp UserListResponse
	if err := c.do(ctx, http.MethodGet, "/user/listadmins/", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AddUser(ctx context.Context, req *AddUserRequest, admin bool) (*UserResponse, error) {
	path := "/user/adduser/"
	if admin {
		path = "/user/addadmin/"
	}
	var resp UserResponse
	if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SearchUsers(ctx context.Context, name string) (*UserListResponse, error) {
	var resp UserListResponse
	path := fmt.Sprintf("/user/searchuser/%s/", url.PathEscape(name))
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, req *UpdateUserRequest) (*UserResponse, error) {
	var resp UserResponse
	path := fmt.Sprintf("/user/updateuser/%s/", url.PathEscape(id))
	if err := c.do(ctx, http.MethodPatch, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
