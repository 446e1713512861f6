// Package sharing is the HTTP client for the sharing service's bootstrap API:
// tenant-scoped permission and entity type vocabularies.
package sharing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Type is a permission or entity type scoped to one tenant.
type Type struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Client talks to the sharing service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient constructs a Client for the sharing service at baseURL.
func NewClient(baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		panic("sharing client requires base URL")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreatePermissionType registers a permission type for the tenant.
func (c *Client) CreatePermissionType(ctx context.Context, t Type, tenantID int64) error {
	path := fmt.Sprintf("/v1/tenants/%d/permission-types", tenantID)
	if err := c.post(ctx, path, t); err != nil {
		return fmt.Errorf("create permission type %q: %w", t.ID, err)
	}
	return nil
}

// CreateEntityType registers an entity type for the tenant.
func (c *Client) CreateEntityType(ctx context.Context, t Type, tenantID int64) error {
	path := fmt.Sprintf("/v1/tenants/%d/entity-types", tenantID)
	if err := c.post(ctx, path, t); err != nil {
		return fmt.Errorf("create entity type %q: %w", t.ID, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("POST %s: unexpected status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return nil
}
