package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"cadvault/backend/api/middleware"
	"cadvault/backend/common"
	"cadvault/backend/library/storage"
	"cadvault/backend/model"
	"cadvault/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// setupTestServer builds a router with the real middleware stack (minus rate
// limiting) on a throwaway database and upload directory.
func setupTestServer(t *testing.T) (*gin.Engine, *common.Config, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &common.Config{
		DatabasePath:   filepath.Join(dir, "test_handler.db"),
		UploadPath:     filepath.Join(dir, "uploads"),
		JWTSecret:      "test-secret",
		TokenExpiry:    time.Hour,
		MaxUploadBytes: 1 << 20,
	}

	err := model.InitDB(cfg)
	assert.NoError(t, err, "model.InitDB() failed during test setup")

	tokens := service.NewTokenService(cfg)
	authHandler := NewAuthHandler(tokens, cfg)
	fileHandler := NewFileHandler(storage.NewStore(cfg.UploadPath), cfg)
	authGate := middleware.JWTAuth(tokens)

	router := gin.New()
	router.POST("/auth/register", authHandler.Register)
	router.POST("/auth/login", authHandler.Login)
	router.POST("/auth/logout", authHandler.Logout)
	router.GET("/auth/me", authGate, authHandler.Me)
	router.POST("/api/upload", authGate, fileHandler.Upload)
	router.GET("/api/files", authGate, fileHandler.List)
	router.GET("/api/files/:id", authGate, fileHandler.Download)

	return router, cfg, func() {
		_ = model.CloseDB()
	}
}

func postJSON(router *gin.Engine, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine, username, team, password string) {
	t.Helper()
	w := postJSON(router, "/auth/register", RegisterRequest{
		Username: username,
		TeamName: team,
		Password: password,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func loginUser(t *testing.T, router *gin.Engine, username, password string) *http.Cookie {
	t.Helper()
	w := postJSON(router, "/auth/login", LoginRequest{Username: username, Password: password})
	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		if c.Name == common.AuthCookieName {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func respMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Message
}

func TestRegister_Success(t *testing.T) {
	router, _, teardown := setupTestServer(t)
	defer teardown()

	w := postJSON(router, "/auth/register", RegisterRequest{
		Username: "alice",
		TeamName: "T1",
		Password: "Abcdef1!",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "User registered successfully", respMessage(t, w))
}

func TestRegister_MissingFields(t *testing.T) {
	router, _, teardown := setupTestServer(t)
	defer teardown()

	w := postJSON(router, "/auth/register", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing fields", respMessage(t, w))

	// Whitespace-only fields are missing fields too.
	w = postJSON(router, "/auth/register", RegisterRequest{
		Username: "   ",
		TeamName: "T1",
		Password: "Abcdef1!",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_WeakPassword(t *testing.T) {
	router, _, teardown := setupTestServer(t)
	defer teardown()

	w := postJSON(router, "/auth/register", RegisterRequest{
		Username: "alice",
		TeamName: "T1",
		Password: "weakpass",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, respMessage(t, w), "Password weak")
}

func TestRegister_DuplicateUsername(t *testing.T) {
	router, _, teardown := setupTestServer(t)
	defer teardown()

	registerUser(t, router, "alice", "T1", "Abcdef1!")

	w := postJSON(router, "/auth/register", RegisterRequest{
		Username: "alice",
		TeamName: "T2",
		Password: "Abcdef1!",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Username already exists", respMessage(t, w))
}

func TestLogin_SetsCookie(t *testing.T) {
	router, _, teardown := setupTestServer(t)
	defer teardown()

	registerUser(t, router, "alice", "T1", "Abcdef1!")

	w := postJSON(router, "/auth/login", LoginRequest{Username: "alice", Password: "Abcdef1!"})
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Message string `json:"message"`
		User    struct {
			Username string `json:"username"`
			TeamName string `json:"teamName"`
		} `json:"user"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Login successful", body.Message)
	assert.Equal(t, "alice", body.User.Username)
	assert.Equal(t, "T1", body.User.TeamName)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == common.AuthCookieName {
			cookie = c
		}
	}
	assert.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.NotEmpty(t, cookie.Value)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router, _, teardown := setupTestServer(t)
	defer teardown()

	registerUser(t, router, "alice", "T1", "Abcdef1!")

	w := postJSON(router, "/auth/login", LoginRequest{Username: "alice", Password: "Wrong1!pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", respMessage(t, w))

	w = postJSON(router, "/auth/login", LoginRequest{Username: "nobody", Password: "Abcdef1!"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", respMessage(t, w))
}

func TestLogin_MissingData(t *testing.T) {
	router, _, teardown := setupTestServer(t)
	defer teardown()

	w := postJSON(router, "/auth/login", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Missing data", respMessage(t, w))
}

func TestMe_AuthGateFailureModes(t *testing.T) {
	router, cfg, teardown := setupTestServer(t)
	defer teardown()

	registerUser(t, router, "alice", "T1", "Abcdef1!")
	cookie := loginUser(t, router, "alice", "Abcdef1!")

	// No cookie at all.
	w := getPath(router, "/auth/me")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token is missing!", respMessage(t, w))

	// Tampered token.
	mutated := *cookie
	mutated.Value = cookie.Value + "xx"
	w = getPath(router, "/auth/me", &mutated)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid token!", respMessage(t, w))

	// Expired but otherwise valid token.
	expiredSvc := service.NewTokenService(&common.Config{
		JWTSecret:   cfg.JWTSecret,
		TokenExpiry: -time.Minute,
	})
	user, err := model.GetUserByUsername("alice")
	assert.NoError(t, err)
	expiredToken, err := expiredSvc.GenerateToken(user.ID)
	assert.NoError(t, err)
	w = getPath(router, "/auth/me", &http.Cookie{Name: common.AuthCookieName, Value: expiredToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Token expired!", respMessage(t, w))

	// Valid token whose user no longer resolves.
	orphanSvc := service.NewTokenService(cfg)
	orphanToken, err := orphanSvc.GenerateToken(424242)
	assert.NoError(t, err)
	w = getPath(router, "/auth/me", &http.Cookie{Name: common.AuthCookieName, Value: orphanToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "User invalid!", respMessage(t, w))

	// And the happy path still works.
	w = getPath(router, "/auth/me", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	var me struct {
		ID        int64  `json:"id"`
		Username  string `json:"username"`
		TeamName  string `json:"teamName"`
		CreatedAt string `json:"created_at"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "T1", me.TeamName)
	assert.NotZero(t, me.ID)
	assert.NotEmpty(t, me.CreatedAt)
}

func TestLogout_ClearsCookie(t *testing.T) {
	router, _, teardown := setupTestServer(t)
	defer teardown()

	registerUser(t, router, "alice", "T1", "Abcdef1!")
	cookie := loginUser(t, router, "alice", "Abcdef1!")

	w := postJSON(router, "/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out", respMessage(t, w))

	var cleared *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == common.AuthCookieName {
			cleared = c
		}
	}
	assert.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// Logout succeeds even without a session.
	w = postJSON(router, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
