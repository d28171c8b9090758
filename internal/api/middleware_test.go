package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wavegram/wavegram/internal/auth"
	"github.com/wavegram/wavegram/internal/models"
	"github.com/wavegram/wavegram/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserStore struct {
	users map[string]*models.User
}

func newStubUserStore(users ...*models.User) *stubUserStore {
	s := &stubUserStore{users: make(map[string]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.users[id], nil
}

func (s *stubUserStore) GetByIDWithPosts(ctx context.Context, id string) (*models.User, error) {
	return s.users[id], nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (s *stubUserStore) Create(ctx context.Context, user *models.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserStore) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
		BcryptCost:    10,
	}
}

func guardedEngine(tokens *auth.TokenService, store *stubUserStore) *gin.Engine {
	engine := gin.New()
	engine.GET("/protected", RequireAuth(tokens, store), func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": user.ID})
	})
	return engine
}

func TestRequireAuthMissingToken(t *testing.T) {
	tokens := auth.NewTokenService(testAuthConfig())
	engine := guardedEngine(tokens, newStubUserStore())

	for _, header := range []string{"", "Basic abc", "token abc", "Bearerabc123"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want %d", header, rec.Code, http.StatusUnauthorized)
		}
		var body ErrorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Message != "Access denied, no token provided" {
			t.Errorf("header %q: message = %q", header, body.Message)
		}
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	tokens := auth.NewTokenService(testAuthConfig())
	engine := guardedEngine(tokens, newStubUserStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Message != "Invalid token" {
		t.Errorf("message = %q, want %q", body.Message, "Invalid token")
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	cfg := testAuthConfig()
	cfg.AccessExpiry = -time.Minute
	expiredIssuer := auth.NewTokenService(cfg)

	user := &models.User{ID: "u1", Email: "a@b.c", Username: "abc"}
	token, err := expiredIssuer.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	tokens := auth.NewTokenService(testAuthConfig())
	engine := guardedEngine(tokens, newStubUserStore(user))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	var body ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Message != "Token expired, please login again" {
		t.Errorf("message = %q", body.Message)
	}
}

func TestRequireAuthRefreshTokenRejected(t *testing.T) {
	tokens := auth.NewTokenService(testAuthConfig())
	user := &models.User{ID: "u1"}
	refresh, err := tokens.IssueRefreshToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	engine := guardedEngine(tokens, newStubUserStore(user))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token accepted on an access route: status = %d", rec.Code)
	}
}

func TestRequireAuthDeletedUser(t *testing.T) {
	tokens := auth.NewTokenService(testAuthConfig())
	token, err := tokens.IssueAccessToken(&models.User{ID: "gone"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	engine := guardedEngine(tokens, newStubUserStore())

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	tokens := auth.NewTokenService(testAuthConfig())
	user := &models.User{ID: "u1", Email: "a@b.c", Username: "abc", Role: models.RoleUser}
	token, err := tokens.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	engine := guardedEngine(tokens, newStubUserStore(user))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["id"] != "u1" {
		t.Errorf("resolved user id = %q, want %q", body["id"], "u1")
	}
}

func TestRateLimit(t *testing.T) {
	engine := gin.New()
	engine.GET("/limited", RateLimit(60, 2), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/limited", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("requests within burst rejected: %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("request over burst not limited: %v", codes)
	}
}
