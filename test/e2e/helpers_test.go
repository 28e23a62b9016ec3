//go:build e2e || browser

package e2e

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/conduit-demo/app/internal/api"
)

// doJSON sends body as JSON and decodes the response into out (when out is not nil).
func doJSON(t *testing.T, client *http.Client, method, url, token string, body, out any) int {
	t.Helper()

	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}

	req, err := http.NewRequestWithContext(t.Context(), method, url, &reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func register(t *testing.T, client *http.Client, baseURL, username, email, password string) api.User {
	t.Helper()

	var resp api.UserResponse
	status := doJSON(t, client, http.MethodPost, baseURL+"/api/users", "",
		api.RegisterRequest{User: api.RegisterUser{Username: username, Email: email, Password: password}}, &resp)
	require.Equal(t, http.StatusCreated, status)
	return resp.User
}
