// Package identity talks to the external identity API that owns the user
// accounts when the gateway runs with AUTH_MODE=remote.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
)

const (
	defaultTimeout = 5 * time.Second
	loginPath      = "/auth/login"
	maxBodyBytes   = 1 << 20
)

// Client implements ports.Authenticator against the identity API.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    *struct {
		ID       string `json:"_id"`
		UserName string `json:"userName"`
		Role     string `json:"role"`
	} `json:"user"`
}

func (c *Client) Authenticate(ctx context.Context, creds domain.Credentials) (*domain.Principal, error) {
	body, err := json.Marshal(loginRequest{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return nil, fmt.Errorf("marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity api: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("identity api: status %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, domain.ErrInvalidCredentials
	}

	var out loginResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !out.Success {
		return nil, domain.ErrInvalidCredentials
	}
	if out.User == nil || out.User.ID == "" {
		return nil, fmt.Errorf("identity api: success without user")
	}

	return &domain.Principal{
		UserID:   out.User.ID,
		Username: out.User.UserName,
		Role:     out.User.Role,
	}, nil
}
