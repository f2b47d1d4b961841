package api

import (
	"context"
	"fmt"
	"net/http"
)

// CreateCompanyRequest is the payload for creating a tenant, including its
// login credentials.
type CreateCompanyRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	CompanyUsername string `json:"company_username"`
	CompanyPassword string `json:"company_password"`
	CompanyEmail    string `json:"company_email"`
}

// UpdateCompanyRequest is a partial company update.
type UpdateCompanyRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// ListCompanies returns all companies. Super-admin only on the backend side.
func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/companies", nil)
	if err != nil {
		return nil, err
	}

	var companies []Company
	if err := c.parseResponse(resp, &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

// GetCompany fetches a single company.
func (c *Client) GetCompany(ctx context.Context, id int) (*Company, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, fmt.Sprintf("%s/companies/%d", apiPrefix, id), nil)
	if err != nil {
		return nil, err
	}

	var company Company
	if err := c.parseResponse(resp, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// CreateCompany creates a tenant.
func (c *Client) CreateCompany(ctx context.Context, req CreateCompanyRequest) (*Company, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, apiPrefix+"/companies", req)
	if err != nil {
		return nil, err
	}

	var company Company
	if err := c.parseResponse(resp, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// UpdateCompany applies a partial update to a company.
func (c *Client) UpdateCompany(ctx context.Context, id int, req UpdateCompanyRequest) (*Company, error) {
	resp, err := c.doRequest(ctx, http.MethodPut, fmt.Sprintf("%s/companies/%d", apiPrefix, id), req)
	if err != nil {
		return nil, err
	}

	var company Company
	if err := c.parseResponse(resp, &company); err != nil {
		return nil, err
	}
	return &company, nil
}

// DeleteCompany deactivates a company.
func (c *Client) DeleteCompany(ctx context.Context, id int) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, fmt.Sprintf("%s/companies/%d", apiPrefix, id), nil)
	if err != nil {
		return err
	}
	return c.parseResponse(resp, nil)
}

// ActivateCompany re-enables a deactivated company.
func (c *Client) ActivateCompany(ctx context.Context, id int) (*Company, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, fmt.Sprintf("%s/companies/%d/activate", apiPrefix, id), nil)
	if err != nil {
		return nil, err
	}

	var company Company
	if err := c.parseResponse(resp, &company); err != nil {
		return nil, err
	}
	return &company, nil
}
