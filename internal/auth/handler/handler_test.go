package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanVu13/simpleauth/internal/auth"
	"github.com/VanVu13/simpleauth/internal/auth/handler"
	"github.com/VanVu13/simpleauth/internal/middleware"
	"github.com/VanVu13/simpleauth/internal/session"
	"github.com/VanVu13/simpleauth/internal/user"
)

type memUserStore struct {
	byName map[string]*user.User
	nextID int
}

func (m *memUserStore) FindByUsername(_ context.Context, username string) (*user.User, error) {
	u, ok := m.byName[username]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserStore) FindByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range m.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (m *memUserStore) Create(_ context.Context, username, passwordHash string) (*user.User, error) {
	if _, ok := m.byName[username]; ok {
		return nil, user.ErrDuplicateUsername
	}
	m.nextID++
	u := &user.User{
		ID:           "u" + string(rune('0'+m.nextID)),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	m.byName[username] = u
	return u, nil
}

type memSessionStore struct {
	sessions map[string]*session.Session
}

func (m *memSessionStore) Create(_ context.Context, userID string, ttl time.Duration) (*session.Session, error) {
	id, err := session.GenerateID()
	if err != nil {
		return nil, err
	}
	s := &session.Session{SessionID: id, UserID: userID, ExpiresAt: time.Now().Add(ttl)}
	m.sessions[id] = s
	return s, nil
}

func (m *memSessionStore) Get(_ context.Context, sessionID string) (*session.Session, error) {
	s, ok := m.sessions[sessionID]
	if !ok || s.IsExpired() {
		return nil, nil
	}
	return s, nil
}

func (m *memSessionStore) Delete(_ context.Context, sessionID string) error {
	delete(m.sessions, sessionID)
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := &memUserStore{byName: make(map[string]*user.User)}
	sessions := &memSessionStore{sessions: make(map[string]*session.Session)}

	svc := auth.NewService(users, sessions, time.Hour)
	h := handler.NewHandler(svc, time.Hour, session.CookieOptions{})
	gate := middleware.NewGate(sessions, "/login")

	router := gin.New()
	h.RegisterPublicRoutes(router)

	protected := router.Group("")
	protected.Use(middleware.GinRequireAuth(gate))
	h.RegisterProtectedRoutes(protected)

	return router
}

func doJSON(router *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func TestRegister(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(router, http.MethodPost, "/api/register", `{"username":"alice","password":"pw1"}`, nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	// No session cookie on register; the user logs in separately.
	assert.Empty(t, rec.Result().Cookies())

	rec = doJSON(router, http.MethodPost, "/api/register", `{"username":"alice","password":"pw2"}`, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/register", `{"username":"","password":"pw"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogin(t *testing.T) {
	router := newTestRouter(t)
	doJSON(router, http.MethodPost, "/api/register", `{"username":"alice","password":"pw1"}`, nil)

	t.Run("success sets session cookie", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/login", `{"username":"alice","password":"pw1"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		c := sessionCookie(t, rec)
		assert.NotEmpty(t, c.Value)
		assert.Equal(t, 3600, c.MaxAge)
		assert.True(t, c.HttpOnly)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		wrongPw := doJSON(router, http.MethodPost, "/api/login", `{"username":"alice","password":"nope"}`, nil)
		unknown := doJSON(router, http.MethodPost, "/api/login", `{"username":"mallory","password":"nope"}`, nil)

		assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrongPw.Body.String(), unknown.Body.String())
	})

	t.Run("empty fields rejected", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/api/login", `{"username":"alice","password":""}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProfile(t *testing.T) {
	router := newTestRouter(t)
	doJSON(router, http.MethodPost, "/api/register", `{"username":"alice","password":"pw1"}`, nil)
	login := doJSON(router, http.MethodPost, "/api/login", `{"username":"alice","password":"pw1"}`, nil)
	cookie := sessionCookie(t, login)

	rec := doJSON(router, http.MethodGet, "/api/profile", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "alice", body.User["username"])
	assert.NotEmpty(t, body.User["id"])

	// The password hash must never appear, under any key.
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "password")
	assert.NotContains(t, strings.ToLower(rec.Body.String()), "hash")
}

func TestProfile_Unauthorized(t *testing.T) {
	router := newTestRouter(t)

	t.Run("machine client", func(t *testing.T) {
		rec := doJSON(router, http.MethodGet, "/api/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	})

	t.Run("interactive client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)
	doJSON(router, http.MethodPost, "/api/register", `{"username":"alice","password":"pw1"}`, nil)
	login := doJSON(router, http.MethodPost, "/api/login", `{"username":"alice","password":"pw1"}`, nil)
	cookie := sessionCookie(t, login)

	rec := doJSON(router, http.MethodPost, "/api/logout", "", cookie)
	require.Equal(t, http.StatusNoContent, rec.Code)

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)

	// The session is gone: profile and a second logout both fail at
	// the gate.
	rec = doJSON(router, http.MethodGet, "/api/profile", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(router, http.MethodPost, "/api/logout", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRootRedirectsToLogin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
