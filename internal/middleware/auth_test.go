package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mightcoding/ISSAConnect/internal/domain"
	"github.com/mightcoding/ISSAConnect/internal/service"
)

type stubAuthService struct {
	service.AuthService

	validateFn func(ctx context.Context, token string) (*domain.Claims, error)
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	return s.validateFn(ctx, token)
}

func newAuthRouter(validateFn func(ctx context.Context, token string) (*domain.Claims, error), skipPaths []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTMiddleware(&JWTConfig{
		AuthService: &stubAuthService{validateFn: validateFn},
		SkipPaths:   skipPaths,
	}))
	router.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	router.GET("/public", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	router := newAuthRouter(func(ctx context.Context, token string) (*domain.Claims, error) {
		require.Equal(t, "good-token", token)
		return &domain.Claims{UserID: "user-1", Username: "alice"}, nil
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["user_id"])
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	router := newAuthRouter(func(ctx context.Context, token string) (*domain.Claims, error) {
		t.Fatal("ValidateToken should not be called")
		return nil, nil
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	router := newAuthRouter(func(ctx context.Context, token string) (*domain.Claims, error) {
		t.Fatal("ValidateToken should not be called")
		return nil, nil
	}, nil)

	for _, header := range []string{"good-token", "Basic abc123", "Bearer"} {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	router := newAuthRouter(func(ctx context.Context, token string) (*domain.Claims, error) {
		return nil, domain.ErrTokenExpired
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestJWTMiddleware_SkipPath(t *testing.T) {
	router := newAuthRouter(func(ctx context.Context, token string) (*domain.Claims, error) {
		t.Fatal("ValidateToken should not be called on a skip path")
		return nil, nil
	}, []string{"/public"})

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePrivileged(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		wantStatus int
	}{
		{"staff allowed", &domain.Claims{UserID: "u1", IsStaff: true}, http.StatusOK},
		{"superuser allowed", &domain.Claims{UserID: "u2", IsSuperuser: true}, http.StatusOK},
		{"member rejected", &domain.Claims{UserID: "u3"}, http.StatusForbidden},
		{"no claims rejected", nil, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.claims != nil {
					c.Set(UserIDKey, tt.claims.UserID)
					c.Set(ClaimsKey, tt.claims)
				}
			})
			router.Use(RequirePrivileged())
			router.GET("/admin", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
