// Package idp is the HTTP client for the identity provider administration
// API: per-tenant realm setup and federated IdP configuration.
package idp

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

// SetupRequest carries everything the identity provider needs to create or
// update a tenant realm.
type SetupRequest struct {
	TenantID       int64    `json:"tenantId"`
	TenantName     string   `json:"tenantName"`
	TenantURL      string   `json:"tenantUrl"`
	AdminUsername  string   `json:"adminUsername"`
	AdminFirstName string   `json:"adminFirstName"`
	AdminLastName  string   `json:"adminLastName"`
	AdminEmail     string   `json:"adminEmail"`
	AdminPassword  string   `json:"adminPassword"`
	RequesterEmail string   `json:"requesterEmail"`
	RedirectURIs   []string `json:"redirectUris"`
	CustosClientID string   `json:"custosClientId"`
}

// ClientCredentials is the client id/secret pair issued for a tenant realm.
type ClientCredentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// FederatedProvider names an external identity broker.
type FederatedProvider string

const ProviderCILogon FederatedProvider = "CILOGON"

// FederatedIDPConfig wires a registered federation client into a tenant realm.
type FederatedIDPConfig struct {
	TenantID       int64             `json:"tenantId"`
	ClientID       string            `json:"clientId"`
	ClientSecret   string            `json:"clientSecret"`
	Scope          string            `json:"scope"`
	RequesterEmail string            `json:"requesterEmail"`
	Provider       FederatedProvider `json:"provider"`
}

// Client talks to the identity provider admin API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient constructs a Client. baseURL is the identity provider root, e.g.
// https://idp.example.org; token is the admin bearer token.
func NewClient(baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		panic("idp client requires base URL")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// BaseURL returns the identity provider root URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateTenantRealm provisions a realm for a new tenant and returns its client credentials.
func (c *Client) CreateTenantRealm(ctx context.Context, req SetupRequest) (ClientCredentials, error) {
	var creds ClientCredentials
	if err := c.doJSON(ctx, http.MethodPost, "/admin/v1/tenants", req, &creds); err != nil {
		return ClientCredentials{}, fmt.Errorf("create tenant realm: %w", err)
	}
	return creds, nil
}

// UpdateTenantRealm reconfigures an existing tenant realm and returns the current client credentials.
func (c *Client) UpdateTenantRealm(ctx context.Context, req SetupRequest) (ClientCredentials, error) {
	var creds ClientCredentials
	path := fmt.Sprintf("/admin/v1/tenants/%d", req.TenantID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &creds); err != nil {
		return ClientCredentials{}, fmt.Errorf("update tenant realm: %w", err)
	}
	return creds, nil
}

// ConfigureFederatedIDP attaches a federated identity broker to a tenant realm.
func (c *Client) ConfigureFederatedIDP(ctx context.Context, cfg FederatedIDPConfig) error {
	path := fmt.Sprintf("/admin/v1/tenants/%d/federated-idp", cfg.TenantID)
	if err := c.doJSON(ctx, http.MethodPost, path, cfg, nil); err != nil {
		return fmt.Errorf("configure federated idp: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
