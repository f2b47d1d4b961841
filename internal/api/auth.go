package api

import (
	"context"
	"net/http"
	"net/url"
)

// Login authenticates an individual account. On success the returned bearer
// token is installed on the client for subsequent requests.
func (c *Client) Login(ctx context.Context, identity, secret string) (*LoginResponse, error) {
	return c.login(ctx, apiPrefix+"/login", identity, secret)
}

// CompanyLogin authenticates a tenant account. The backend answers with the
// company's virtual admin user; role normalization happens in the
// authentication flow, not here.
func (c *Client) CompanyLogin(ctx context.Context, identity, secret string) (*LoginResponse, error) {
	return c.login(ctx, apiPrefix+"/company-login", identity, secret)
}

func (c *Client) login(ctx context.Context, path, identity, secret string) (*LoginResponse, error) {
	form := url.Values{}
	form.Set("username", identity)
	form.Set("password", secret)

	resp, err := c.doForm(ctx, path, form)
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := c.parseResponse(resp, &loginResp); err != nil {
		return nil, err
	}

	c.SetToken(loginResp.AccessToken)
	return &loginResp, nil
}

// CurrentUser fetches the profile behind the installed token. Used to
// revalidate a persisted session at startup.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, apiPrefix+"/users/me", nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := c.parseResponse(resp, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
