package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cantina-pos/internal/models"
	"github.com/cantina-pos/internal/repository"
	"github.com/cantina-pos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}
}

func setupAuthMiddlewareTest(t *testing.T) (repository.UserRepository, *models.User) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	user := &models.User{Username: "caja1", PasswordHash: "x", Role: "cashier", Active: true}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	return repository.NewUserRepository(db), user
}

func signTestToken(t *testing.T, secret string, userID uint, role string) string {
	t.Helper()
	claims := service.JWTClaims{
		UserID:   userID,
		Username: "caja1",
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const secret = "test-secret"
	userRepo, user := setupAuthMiddlewareTest(t)

	r := gin.New()
	r.Use(JWTAuthMiddleware(secret, userRepo))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": c.GetString("role")})
	})

	// valid token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, user.ID, user.Role))
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "cashier") {
		t.Fatalf("expected role in response, got %s", w.Body.String())
	}

	// missing header
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "401") {
		t.Fatalf("missing header should be rejected, got %s", w.Body.String())
	}

	// wrong secret
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "other-secret", user.ID, user.Role))
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "401") {
		t.Fatalf("bad signature should be rejected, got %s", w.Body.String())
	}

	// unknown user
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, 999, user.Role))
	r.ServeHTTP(w, req)
	if !strings.Contains(w.Body.String(), "401") {
		t.Fatalf("unknown user should be rejected, got %s", w.Body.String())
	}
}

func TestRequireRoles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if role != "" {
				c.Set("role", role)
			}
			c.Next()
		})
		r.Use(RequireRoles("admin", "cashier"))
		r.GET("/charge", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		return r
	}

	for role, allowed := range map[string]bool{"admin": true, "cashier": true, "waiter": false, "": false} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/charge", nil)
		newRouter(role).ServeHTTP(w, req)
		got := strings.Contains(w.Body.String(), "ok")
		if got != allowed {
			t.Fatalf("role %q allowed=%v want %v (body %s)", role, got, allowed, w.Body.String())
		}
	}
}
