package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/taskkeeper/internal/server/config"
	"github.com/iudanet/taskkeeper/internal/server/storage/sqlite"
	"github.com/iudanet/taskkeeper/pkg/api"
)

// setupTestServer spins up the fully wired router over an in-memory
// database so the tests exercise the real middleware and storage stack.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg := &config.Config{
		Address:      ":0",
		DatabasePath: ":memory:",
		SecretKey:    "test-secret-key",
		TokenTTL:     time.Hour,
		BcryptCost:   bcrypt.MinCost,
	}

	srv := httptest.NewServer(New(cfg, logger, store, "test").Handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func registerUser(t *testing.T, srv *httptest.Server, email, password, name string) api.AuthResponse {
	t.Helper()

	resp, body := doJSON(t, srv, http.MethodPost, "/users", "", api.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     name,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var auth api.AuthResponse
	require.NoError(t, json.Unmarshal(body, &auth))
	return auth
}

func TestServer_SessionLifecycle(t *testing.T) {
	srv := setupTestServer(t)

	reg := registerUser(t, srv, "alice@example.com", "Secr3t!", "Alice")
	tokenOne := reg.Token

	// Second login from another device; sleep so the signed token differs
	time.Sleep(1100 * time.Millisecond)
	resp, body := doJSON(t, srv, http.MethodPost, "/users/login", "", api.LoginRequest{
		Email:    "alice@example.com",
		Password: "Secr3t!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var login api.AuthResponse
	require.NoError(t, json.Unmarshal(body, &login))
	tokenTwo := login.Token
	require.NotEqual(t, tokenOne, tokenTwo)

	// Both sessions pass the gate
	resp, _ = doJSON(t, srv, http.MethodGet, "/users/me", tokenOne, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodGet, "/users/me", tokenTwo, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Logout with the first token revokes only that session
	resp, _ = doJSON(t, srv, http.MethodPost, "/users/logout", tokenOne, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, "/users/me", tokenOne, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp, _ = doJSON(t, srv, http.MethodGet, "/users/me", tokenTwo, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// logoutAll kills every remaining session
	resp, _ = doJSON(t, srv, http.MethodPost, "/users/logoutAll", tokenTwo, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, srv, http.MethodGet, "/users/me", tokenTwo, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_GateRejectsWithoutCredentials(t *testing.T) {
	srv := setupTestServer(t)

	resp, body := doJSON(t, srv, http.MethodGet, "/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "missing credentials")

	resp, body = doJSON(t, srv, http.MethodGet, "/users/me", "not.a.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, string(body), "invalid token")
}

func TestServer_DeleteUserInvalidatesSessions(t *testing.T) {
	srv := setupTestServer(t)

	reg := registerUser(t, srv, "alice@example.com", "Secr3t!", "Alice")

	resp, body := doJSON(t, srv, http.MethodDelete, "/users/me", reg.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var deleted api.User
	require.NoError(t, json.Unmarshal(body, &deleted))
	assert.Equal(t, "alice@example.com", deleted.Email)

	// The token is signed and unexpired, but the account is gone
	resp, _ = doJSON(t, srv, http.MethodGet, "/users/me", reg.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_TaskFlow(t *testing.T) {
	srv := setupTestServer(t)

	alice := registerUser(t, srv, "alice@example.com", "Secr3t!", "Alice")
	bob := registerUser(t, srv, "bob@example.com", "Secr3t!", "Bob")

	resp, body := doJSON(t, srv, http.MethodPost, "/tasks", alice.Token, api.CreateTaskRequest{
		Description: "water the plants",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var task api.Task
	require.NoError(t, json.Unmarshal(body, &task))

	// Bob cannot see Alice's task
	resp, _ = doJSON(t, srv, http.MethodGet, "/tasks/"+task.ID, bob.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = doJSON(t, srv, http.MethodGet, "/tasks", bob.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "[]", string(bytes.TrimSpace(body)))

	// Alice completes it
	completed := true
	resp, body = doJSON(t, srv, http.MethodPatch, "/tasks/"+task.ID, alice.Token, api.UpdateTaskRequest{
		Completed: &completed,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	require.NoError(t, json.Unmarshal(body, &task))
	assert.True(t, task.Completed)

	resp, _ = doJSON(t, srv, http.MethodDelete, "/tasks/"+task.ID, alice.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_AvatarRoundTrip(t *testing.T) {
	srv := setupTestServer(t)

	alice := registerUser(t, srv, "alice@example.com", "Secr3t!", "Alice")

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, img))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("avatar", "me.png")
	require.NoError(t, err)
	_, err = part.Write(pngBuf.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/users/me/avatar", &form)
	require.NoError(t, err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+alice.Token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Fetch it back: always a square PNG
	getResp, body := doJSON(t, srv, http.MethodGet, "/users/"+alice.User.ID+"/avatar", alice.Token, nil)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.Equal(t, "image/png", getResp.Header.Get("Content-Type"))

	decoded, format, err := image.Decode(bytes.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 250, decoded.Bounds().Dx())
	assert.Equal(t, 250, decoded.Bounds().Dy())

	// Delete and the fetch turns into 404
	resp2, _ := doJSON(t, srv, http.MethodDelete, "/users/me/avatar", alice.Token, nil)
	require.Equal(t, http.StatusOK, resp2.StatusCode)

	getResp, _ = doJSON(t, srv, http.MethodGet, "/users/"+alice.User.ID+"/avatar", alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestServer_Health(t *testing.T) {
	srv := setupTestServer(t)

	resp, body := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")
}
