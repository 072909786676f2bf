package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Black-box helpers for exercising a running API instance. The tests skip
// themselves when no server is listening, so `go test ./...` stays green on
// machines without the stack up.

const (
	// BaseURL points at the local API instance.
	BaseURL = "http://localhost:8080/api/v1"
	// PingURL is the health endpoint used to detect a running server.
	PingURL = "http://localhost:8080/ping"
	// Timeout bounds every request made by the helpers.
	Timeout = 10 * time.Second

	// TestPassword satisfies the password policy.
	TestPassword = "Test1234!"
)

// Response is the envelope every endpoint answers with, plus the HTTP
// status so tests can assert on both layers.
type Response struct {
	Status  int             `json:"-"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// UserData is the wire view of a user.
type UserData struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginData is the login response payload.
type LoginData struct {
	User         UserData `json:"user"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresIn    int64    `json:"expires_in"`
}

// RequireServer skips the calling test when the API is not reachable.
func RequireServer(t *testing.T) {
	t.Helper()

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(PingURL)
	if err != nil {
		t.Skipf("API server not reachable at %s: %v", PingURL, err)
	}
	resp.Body.Close()
}

// DoJSON sends a request with an optional JSON body and bearer token and
// decodes the response envelope. A 204 yields an empty envelope with only
// Status set.
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "marshal request body")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "build request")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "send request")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "read response body")

	result := &Response{Status: resp.StatusCode}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, result), "decode response: %s", string(raw))
	}

	return result
}

// PostJSON sends a POST request.
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodPost, url, data, token)
}

// GetJSON sends a GET request.
func GetJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodGet, url, nil, token)
}

// PutJSON sends a PUT request.
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON sends a DELETE request.
func DeleteJSON(t *testing.T, url string, token string) *Response {
	t.Helper()
	return DoJSON(t, http.MethodDelete, url, nil, token)
}

// GenerateTestEmail returns a unique email so repeated runs never collide
// on the unique index.
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// CreateTestUser creates a user through the API and returns its wire view.
func CreateTestUser(t *testing.T, name string) UserData {
	t.Helper()

	email := GenerateTestEmail(name)
	resp := PostJSON(t, BaseURL+"/users", map[string]string{
		"email":    email,
		"name":     name,
		"password": TestPassword,
	}, "")
	require.Equal(t, http.StatusCreated, resp.Status, "create user failed: %s", resp.Message)

	var user UserData
	require.NoError(t, json.Unmarshal(resp.Data, &user), "decode created user")
	return user
}

// LoginTestUser logs an existing user in and returns the access token.
func LoginTestUser(t *testing.T, email string) string {
	t.Helper()

	resp := PostJSON(t, BaseURL+"/users/login", map[string]string{
		"email":    email,
		"password": TestPassword,
	}, "")
	require.Equal(t, http.StatusOK, resp.Status, "login failed: %s", resp.Message)

	var login LoginData
	require.NoError(t, json.Unmarshal(resp.Data, &login), "decode login response")
	return login.AccessToken
}
