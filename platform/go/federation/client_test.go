package federation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterClient(t *testing.T) {
	var got ClientMetadata
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/clients", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ClientCredentials{ClientID: "broker-client", ClientSecret: "broker-secret"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	creds, err := c.RegisterClient(context.Background(), ClientMetadata{
		TenantID:     42,
		TenantName:   "Acme",
		Scope:        []string{"openid", "profile"},
		RedirectURIs: []string{"https://idp.example.org/realms/42/broker/oidc/endpoint"},
		PerformedBy:  "system",
	})
	require.NoError(t, err)
	require.Equal(t, "broker-client", creds.ClientID)
	require.Equal(t, "broker-secret", creds.ClientSecret)
	require.Equal(t, int64(42), got.TenantID)
	require.Equal(t, []string{"openid", "profile"}, got.Scope)
}

func TestRegisterClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate client", http.StatusConflict)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.RegisterClient(context.Background(), ClientMetadata{TenantID: 42})
	require.Error(t, err)
	require.Contains(t, err.Error(), "409")
	require.Contains(t, err.Error(), "duplicate client")
}
