package configcmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/chatmd/internal/config"
)

func testConfig(serverURL string) *config.Config {
	return &config.Config{
		DirectoryURL:   serverURL,
		DirectoryToken: "test-token",
	}
}

func statusServer(status int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
}

func TestRunTest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		switch r.URL.Path {
		case "/api/v1/members":
			_, _ = w.Write([]byte(`{"results": [{"username": "alice"}, {"username": "old", "deactivated": true}]}`))
		case "/api/v1/groups":
			_, _ = w.Write([]byte(`{"results": [{"name": "ops"}]}`))
		case "/api/v1/emoji":
			_, _ = w.Write([]byte(`{"results": [{"name": "party", "aliases": ["tada2"]}]}`))
		}
	}))
	defer server.Close()

	var out bytes.Buffer
	require.NoError(t, runTest(context.Background(), testConfig(server.URL), true, &out))
	assert.Contains(t, out.String(), "Mentionable names: 2")
	assert.Contains(t, out.String(), "Custom emoji: 2")
}

func TestRunTest_AuthFailure(t *testing.T) {
	server := statusServer(http.StatusUnauthorized)
	defer server.Close()

	var out bytes.Buffer
	err := runTest(context.Background(), testConfig(server.URL), true, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication failed")
	assert.Contains(t, out.String(), "401 Unauthorized")
}

func TestRunTest_Forbidden(t *testing.T) {
	server := statusServer(http.StatusForbidden)
	defer server.Close()

	err := runTest(context.Background(), testConfig(server.URL), true, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestRunTest_ServerError(t *testing.T) {
	server := statusServer(http.StatusInternalServerError)
	defer server.Close()

	err := runTest(context.Background(), testConfig(server.URL), true, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status code: 500")
}

func TestRunTest_NoDirectory(t *testing.T) {
	err := runTest(context.Background(), &config.Config{}, true, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no directory configured")
}
