// Package api holds clients for external services.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"darts-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

var ErrInvalidToken = errors.New("invalid token")

// IdentityClient verifies bearer tokens against the identity service that
// issues them. The service owns credentials and sessions; this backend only
// asks "who is this token".
type IdentityClient struct {
	baseURL string
	apiKey  string
	client  *fasthttp.Client
}

type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type identityUserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Metadata struct {
		FullName string `json:"full_name"`
		Name     string `json:"name"`
	} `json:"user_metadata"`
}

func NewIdentityClient(cfg *config.Config) *IdentityClient {
	return &IdentityClient{
		baseURL: strings.TrimRight(cfg.IdentityURL, "/"),
		apiKey:  cfg.IdentityAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

// VerifyToken resolves a bearer token to the identity it belongs to.
// A 401 or 403 from the identity service means the token is bad, not that the
// service failed.
func (c *IdentityClient) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + "/auth/v1/user")
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("apikey", c.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("identity request failed: %w", err)
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, fmt.Errorf("identity request failed: %w", err)
		}
	}

	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusUnauthorized, fasthttp.StatusForbidden:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("identity service error: %d", resp.StatusCode())
	}

	var user identityUserResponse
	if err := json.Unmarshal(resp.Body(), &user); err != nil {
		return nil, fmt.Errorf("failed to decode identity response: %w", err)
	}
	if user.ID == "" {
		return nil, ErrInvalidToken
	}

	name := user.Metadata.FullName
	if name == "" {
		name = user.Metadata.Name
	}
	return &Identity{ID: user.ID, Email: user.Email, Name: name}, nil
}
