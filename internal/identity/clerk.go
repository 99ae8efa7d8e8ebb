package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// ClerkAPIURL is the default Clerk backend API base.
	ClerkAPIURL = "https://api.clerk.dev"

	requestTimeout = 10 * time.Second
	maxBodySize    = 1 << 16
)

type clerkSession struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`
}

// ClerkVerifier verifies session tokens against the Clerk backend API.
type ClerkVerifier struct {
	secretKey string
	baseURL   string
	http      *http.Client
}

// NewClerkVerifier creates a verifier using the given backend secret key.
// Returns nil if the key is empty.
func NewClerkVerifier(secretKey, baseURL string) *ClerkVerifier {
	secretKey = strings.TrimSpace(secretKey)
	if secretKey == "" {
		return nil
	}
	if baseURL == "" {
		baseURL = ClerkAPIURL
	}
	return &ClerkVerifier{
		secretKey: secretKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http:      &http.Client{},
	}
}

// Verify implements Verifier.
func (c *ClerkVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	if token == "" {
		return Identity{}, ErrMissingToken
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1/sessions/%s/verify", c.baseURL, url.PathEscape(token))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusBadRequest:
		return Identity{}, ErrInvalidToken
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return Identity{}, fmt.Errorf("identity: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Identity{}, fmt.Errorf("identity: reading response: %w", err)
	}

	var sess clerkSession
	if err := json.Unmarshal(body, &sess); err != nil {
		return Identity{}, fmt.Errorf("identity: parsing session: %w", err)
	}
	if sess.UserID == "" {
		return Identity{}, fmt.Errorf("%w: session has no user", ErrInvalidToken)
	}
	if sess.Status != "" && sess.Status != "active" {
		return Identity{}, fmt.Errorf("%w: session %s", ErrInvalidToken, sess.Status)
	}

	return Identity{Subject: sess.UserID, SessionID: sess.ID}, nil
}
