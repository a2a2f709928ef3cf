package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vaishnavi-m01/vrdoctor-client/internal/client/models"
	"github.com/vaishnavi-m01/vrdoctor-client/internal/common"
)

const signInPath = "/api/usersdata/user-signin"

// HTTPClient talks JSON over HTTP to the VR-Doctor backend.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient constructs a client for the given base URL, e.g.
// "https://api.example.org". The timeout bounds every request end to end.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// Login posts the credentials to the sign-in endpoint. The backend answers
// with a one-element JSON array carrying the user profile, the issued token,
// and a display message. No token in the body means the login failed,
// whatever the HTTP status says.
func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (*models.LoginResult, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("encoding credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+signInPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var items []models.LoginResponseItem
	if err := json.Unmarshal(data, &items); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("sign-in failed: %s", resp.Status)
		}
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	if len(items) == 0 {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("sign-in failed: %s", resp.Status)
		}
		return nil, common.ErrEmptyResponse
	}

	item := items[0]
	if resp.StatusCode != http.StatusOK {
		if item.Message != "" {
			return nil, fmt.Errorf("sign-in failed: %s", item.Message)
		}
		return nil, fmt.Errorf("sign-in failed: %s", resp.Status)
	}
	if item.Token == "" {
		return nil, common.ErrNoTokenInResponse
	}

	return &models.LoginResult{User: item.User, Token: item.Token, Message: item.Message}, nil
}

// Close is part of the Client interface; the stdlib HTTP client holds no
// resources that need explicit release.
func (c *HTTPClient) Close() error { return nil }
