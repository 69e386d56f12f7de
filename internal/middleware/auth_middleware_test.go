package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"quizforge/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.JWTTTLHours = 1
	return cfg
}

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return signed
}

func newProtectedRouter(cfg *config.Config) (*gin.Engine, *uint) {
	gin.SetMode(gin.TestMode)
	var seenAccountID uint
	r := gin.New()
	r.GET("/protected", Auth(cfg), func(c *gin.Context) {
		id, ok := AccountID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		seenAccountID = id
		c.Status(http.StatusOK)
	})
	return r, &seenAccountID
}

func TestAuthAcceptsValidToken(t *testing.T) {
	cfg := testConfig()
	router, seenAccountID := newProtectedRouter(cfg)

	token := signToken(t, cfg.Auth.JWTSecret, "42", time.Now().Add(time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}
	if *seenAccountID != 42 {
		t.Errorf("account ID in context = %d, want 42", *seenAccountID)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	cfg := testConfig()
	router, _ := newProtectedRouter(cfg)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed token", "Bearer not-a-token"},
		{"wrong secret", "Bearer " + signToken(t, "other-secret", "42", time.Now().Add(time.Hour))},
		{"expired token", "Bearer " + signToken(t, cfg.Auth.JWTSecret, "42", time.Now().Add(-time.Hour))},
		{"non-numeric subject", "Bearer " + signToken(t, cfg.Auth.JWTSecret, "alice", time.Now().Add(time.Hour))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", w.Code)
			}
		})
	}
}
