package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/atlas-retail/atlas-retail/internal/platform/httpx"
	"github.com/atlas-retail/atlas-retail/internal/shared"
	"github.com/atlas-retail/atlas-retail/internal/users"
)

type memoryUserStore struct {
	byID    map[int64]users.User
	byEmail map[string]users.User
	nextID  int64
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{byID: make(map[int64]users.User), byEmail: make(map[string]users.User)}
}

func (s *memoryUserStore) FindByEmail(ctx context.Context, email string) (users.User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return users.User{}, fmt.Errorf("%w: user %s", httpx.ErrNotFound, email)
	}
	return u, nil
}

func (s *memoryUserStore) Create(ctx context.Context, user users.User) (users.User, error) {
	if _, ok := s.byEmail[user.Email]; ok {
		return users.User{}, fmt.Errorf("%w: user with email %s", httpx.ErrDuplicate, user.Email)
	}
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
	return user, nil
}

func (s *memoryUserStore) Get(ctx context.Context, id int64) (users.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return users.User{}, fmt.Errorf("%w: user %d", httpx.ErrNotFound, id)
	}
	return u, nil
}

func newTestHandler() *Handler {
	store := newMemoryUserStore()
	service := NewService(store)
	tokens := NewTokenIssuer("test-secret", time.Hour)
	return NewHandler(nil, service, tokens, false)
}

func postJSON(t *testing.T, handler http.HandlerFunc, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterAndLogin(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.handleRegister, map[string]string{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotContains(t, rec.Body.String(), "password_hash")

	rec = postJSON(t, h.handleLogin, map[string]string{
		"email":    "dana@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	require.True(t, cookie.HttpOnly)

	claims, err := h.tokens.Parse(cookie.Value)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.handleRegister, map[string]string{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.handleLogin, map[string]string{
		"email":    "dana@example.com",
		"password": "battery staple",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterValidation(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.handleRegister, map[string]string{
		"name":     "Dana",
		"email":    "not-an-email",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.handleRegister, map[string]string{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.handleRegister, map[string]string{
		"name":     "Dana",
		"email":    "dana@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.handleRegister, map[string]string{
		"name":     "Imposter",
		"email":    "dana@example.com",
		"password": "correct horse",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRequireAuthMiddleware(t *testing.T) {
	tokens := NewTokenIssuer("test-secret", time.Hour)
	mw := Middleware{Tokens: tokens}

	var seenUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = shared.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	// No token.
	rec := httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid bearer token.
	token, err := tokens.Issue(42, "dana@example.com")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, int64(42), seenUserID)

	// Token signed with another secret.
	otherToken, err := NewTokenIssuer("other-secret", time.Hour).Issue(42, "dana@example.com")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: otherToken})
	rec = httptest.NewRecorder()
	mw.RequireAuth(next).ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
