package client

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/wedlink-admin/internal/common"
)

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the signup payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

var errEmptyToken = errors.New("backend returned an empty access token")

// AuthClient talks to the /auth endpoints. It must be built on an http.Client
// without AuthTransport so that a failing refresh never triggers another one;
// it shares the cookie jar with the API client.
type AuthClient struct {
	rest
}

func NewAuthClient(baseURL string, hc *http.Client) *AuthClient {
	return &AuthClient{rest: newRest(baseURL, hc)}
}

func (c *AuthClient) Signup(ctx context.Context, r Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/signup", r, nil)
}

func (c *AuthClient) Login(ctx context.Context, cr Credentials) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", cr, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errEmptyToken
	}
	return resp.AccessToken, nil
}

// Refresh mints a new access token from the refresh cookie held in the jar.
func (c *AuthClient) Refresh(ctx context.Context) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/auth/refresh", nil, &resp); err != nil {
		return "", err
	}
	if resp.AccessToken == "" {
		return "", errEmptyToken
	}
	return resp.AccessToken, nil
}

// Logout invalidates the server-side session. token may be empty.
func (c *AuthClient) Logout(ctx context.Context, token string) error {
	req, err := http.NewRequestWithContext(c.requestContext(ctx), http.MethodPost, c.url("/auth/logout"), http.NoBody)
	if err != nil {
		return err
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}
	return c.send(req, nil)
}
