package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strideapp/stride/internal/ctxkeys"
	"github.com/strideapp/stride/internal/model"
	"github.com/strideapp/stride/internal/repository"
	"github.com/strideapp/stride/internal/service"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

// stubUserRepo holds at most one account. Anything else is a miss.
type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) Create(user *model.User) error { return nil }

func (s *stubUserRepo) ByID(id string) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		return s.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *stubUserRepo) ByEmail(email string) (*model.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, repository.ErrUserNotFound
}

func newAuthGate(repo repository.UserRepository) (func(http.HandlerFunc) http.HandlerFunc, *service.AuthService) {
	emailService := service.NewEmailService("", "noreply@test.local", "http://localhost:8090", "Stride", true)
	authService := service.NewAuthService(repo, emailService, service.BcryptHasher{}, "gate-secret", time.Hour)
	userService := service.NewUserService(repo)
	return RequireAuth(authService, userService), authService
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["message"]
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	gate, _ := newAuthGate(&stubUserRepo{})

	called := false
	handler := gate(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", errorMessage(t, rec))
	assert.False(t, called)
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	gate, _ := newAuthGate(&stubUserRepo{})

	handler := gate(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "authentication required", errorMessage(t, rec))
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	gate, _ := newAuthGate(&stubUserRepo{})

	handler := gate(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", errorMessage(t, rec))
}

func TestRequireAuth_DeletedAccount(t *testing.T) {
	// Repo is empty, so the token's account no longer exists.
	gate, authService := newAuthGate(&stubUserRepo{})

	token, err := authService.GenerateJWT(&model.User{ID: "gone", Email: "gone@example.com"})
	require.NoError(t, err)

	handler := gate(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", errorMessage(t, rec))
}

func TestRequireAuth_ValidToken(t *testing.T) {
	account := &model.User{ID: "acc-1", Email: "runner@example.com"}
	gate, authService := newAuthGate(&stubUserRepo{user: account})

	token, err := authService.GenerateJWT(account)
	require.NoError(t, err)

	var seenUserID string
	handler := gate(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = ctxkeys.UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "acc-1", seenUserID)
}

func TestRequireAuth_SchemeIsCaseInsensitive(t *testing.T) {
	account := &model.User{ID: "acc-1", Email: "runner@example.com"}
	gate, authService := newAuthGate(&stubUserRepo{user: account})

	token, err := authService.GenerateJWT(account)
	require.NoError(t, err)

	handler := gate(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
