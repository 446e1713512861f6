// Package federation is the HTTP client for the federated-authentication
// registrar (CILogon-style identity broker client registration).
package federation

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

// ClientMetadata describes a federation client to be registered with the broker.
type ClientMetadata struct {
	TenantID     int64    `json:"tenantId"`
	TenantName   string   `json:"tenantName"`
	TenantURI    string   `json:"tenantUri"`
	Comment      string   `json:"comment"`
	Scope        []string `json:"scope"`
	RedirectURIs []string `json:"redirectUris"`
	Contacts     []string `json:"contacts"`
	PerformedBy  string   `json:"performedBy"`
	ClientID     string   `json:"clientId"`
}

// ClientCredentials is the credential pair issued by the registrar.
type ClientCredentials struct {
	ClientID     string `json:"clientId"`
	ClientSecret string `json:"clientSecret"`
}

// Client talks to the federated-authentication registrar.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient constructs a Client for the registrar at baseURL.
func NewClient(baseURL, token string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		panic("federation client requires base URL")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// RegisterClient registers a federation client and returns its issued credentials.
func (c *Client) RegisterClient(ctx context.Context, meta ClientMetadata) (ClientCredentials, error) {
	payload, err := json.Marshal(meta)
	if err != nil {
		return ClientCredentials{}, fmt.Errorf("encode client metadata: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/clients", bytes.NewReader(payload))
	if err != nil {
		return ClientCredentials{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ClientCredentials{}, fmt.Errorf("register client: %w", err)
	}
	defer resp.Body.Close() // nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ClientCredentials{}, fmt.Errorf("register client: unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var creds ClientCredentials
	if err := json.NewDecoder(resp.Body).Decode(&creds); err != nil {
		return ClientCredentials{}, fmt.Errorf("decode register response: %w", err)
	}
	return creds, nil
}
