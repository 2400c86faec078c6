package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examia/examia-backend/internal/config"
	"github.com/examia/examia-backend/internal/models"
	"github.com/examia/examia-backend/internal/server/bootstrap"
	"github.com/examia/examia-backend/internal/server/storage/sqlite"
	"github.com/examia/examia-backend/internal/server/token"
	"github.com/examia/examia-backend/pkg/api"
)

// setupTestServer builds the full handler chain over an in-memory
// database with a provisioned admin account.
func setupTestServer(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), logger, store, "admin@x.com", "adminpass"))

	cfg := &config.Config{
		Address:        ":0",
		FrontendOrigin: "https://examia.example",
	}
	tokens := token.NewService("test-secret", time.Hour)

	return New(logger, cfg, store, store, tokens, "test").Handler()
}

func doJSON(t *testing.T, h http.Handler, method, target, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func signup(t *testing.T, h http.Handler, email, password string) api.AuthResponse {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/api/auth/signup", "", api.SignupRequest{
		Name:     "Student",
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func login(t *testing.T, h http.Handler, email, password string) api.AuthResponse {
	t.Helper()

	w := doJSON(t, h, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestServer_FullFlow(t *testing.T) {
	h := setupTestServer(t)

	user := signup(t, h, "student@x.com", "secret1")
	assert.Equal(t, "user", user.Role)

	admin := login(t, h, "admin@x.com", "adminpass")
	assert.Equal(t, "admin", admin.Role)

	// Reads require a token
	w := doJSON(t, h, http.MethodGet, "/api/pyqs", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Empty bank lists as an empty array, not null
	w = doJSON(t, h, http.MethodGet, "/api/pyqs", user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed api.PYQListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 0, listed.Count)
	assert.NotNil(t, listed.Items)

	// Only admins write
	create := api.CreatePYQRequest{
		Exam:     "JEE Main",
		Year:     "2023",
		Subject:  "Physics",
		Chapter:  "Kinematics",
		Question: "Define displacement.",
		Solution: "Shortest path between start and end.",
		Type:     "written",
	}
	w = doJSON(t, h, http.MethodPost, "/api/admin/pyqs", user.Token, create)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/admin/pyqs", admin.Token, create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.PYQ
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// The new record is visible to users
	w = doJSON(t, h, http.MethodGet, "/api/pyqs?subject=Physics", user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, created.ID, listed.Items[0].ID)

	w = doJSON(t, h, http.MethodGet, "/api/pyqs/chapters?subject=Physics", user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var chapters api.ChaptersResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &chapters))
	assert.Equal(t, []string{"Kinematics"}, chapters.Chapters)

	// Delete is admin-only and answers 404 for unknown ids
	w = doJSON(t, h, http.MethodDelete, "/api/admin/pyqs/"+created.ID, user.Token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, h, http.MethodDelete, "/api/admin/pyqs/"+created.ID, admin.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var deleted api.DeleteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &deleted))
	assert.Equal(t, created.ID, deleted.DeletedID)

	w = doJSON(t, h, http.MethodDelete, "/api/admin/pyqs/"+created.ID, admin.Token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// And the listing reflects the removal
	w = doJSON(t, h, http.MethodGet, "/api/pyqs", user.Token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 0, listed.Count)
}

func TestServer_Health(t *testing.T) {
	h := setupTestServer(t)

	w := doJSON(t, h, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
}

func TestServer_CORSPreflight(t *testing.T) {
	h := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/pyqs", nil)
	req.Header.Set("Origin", "https://examia.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://examia.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_LoginRejectsBadCredentials(t *testing.T) {
	h := setupTestServer(t)
	signup(t, h, "student@x.com", "secret1")

	w := doJSON(t, h, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
		Email:    "student@x.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, h, http.MethodPost, "/api/auth/login", "", api.LoginRequest{
		Email:    "nobody@x.com",
		Password: "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServer_ErrorPayloadShape(t *testing.T) {
	h := setupTestServer(t)

	w := doJSON(t, h, http.MethodGet, "/api/pyqs", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
}
