package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateUserRequest is the payload for creating a user.
type CreateUserRequest struct {
	Email          string `json:"email"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Role           string `json:"role"`
	CompanyID      *int   `json:"company_id,omitempty"`
	IsActive       bool   `json:"is_active"`
	CanAssignTasks bool   `json:"can_assign_tasks"`
}

// UpdateUserRequest is a partial user update; nil fields are left unchanged.
type UpdateUserRequest struct {
	Email          *string `json:"email,omitempty"`
	Username       *string `json:"username,omitempty"`
	Password       *string `json:"password,omitempty"`
	Role           *string `json:"role,omitempty"`
	CompanyID      *int    `json:"company_id,omitempty"`
	IsActive       *bool   `json:"is_active,omitempty"`
	CanAssignTasks *bool   `json:"can_assign_tasks,omitempty"`
}

// ListUsersOptions narrows ListUsers.
type ListUsersOptions struct {
	Skip  int
	Limit int
}

// ListUsers returns the users visible to the caller. The backend scopes the
// result by role: super admins see everyone, admins their company only.
func (c *Client) ListUsers(ctx context.Context, opts ListUsersOptions) ([]User, error) {
	q := url.Values{}
	if opts.Skip > 0 {
		q.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	path := apiPrefix + "/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var users []User
	if err := c.parseResponse(resp, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches a single user by id.
func (c *Client) GetUser(ctx context.Context, id int) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/users/%d", apiPrefix, id), nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a user.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/users", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user.
func (c *Client) UpdateUser(ctx context.Context, id int, req UpdateUserRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("%s/users/%d", apiPrefix, id), req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser deactivates or removes a user.
func (c *Client) DeleteUser(ctx context.Context, id int) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/users/%d", apiPrefix, id), nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

// ActivateUser re-enables a deactivated user.
func (c *Client) ActivateUser(ctx context.Context, id int) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("%s/users/%d/activate", apiPrefix, id), nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile fetches the caller's own profile.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/profile", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfileRequest is a partial self-service profile update.
type UpdateProfileRequest struct {
	FullName          *string `json:"full_name,omitempty"`
	AvatarURL         *string `json:"avatar_url,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	Department        *string `json:"department,omitempty"`
	AboutMe           *string `json:"about_me,omitempty"`
	PreferredLanguage *string `json:"preferred_language,omitempty"`
}

// UpdateProfile updates the caller's own profile.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, apiPrefix+"/profile", req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
