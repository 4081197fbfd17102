package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentika/internal/infrastructure/auth"
	"talentika/internal/infrastructure/ratelimit"
	"talentika/internal/shared/constants"
	"talentika/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s *stubVerifier) Verify(token string) (*auth.Claims, error) {
	return s.claims, s.err
}

type stubEnforcer struct {
	allowed bool
	err     error
	subject string
}

func (s *stubEnforcer) Enforce(subject, resource, action string) (bool, error) {
	s.subject = subject
	return s.allowed, s.err
}

type stubLimiter struct {
	result ratelimit.Result
	err    error
	keys   []string
}

func (s *stubLimiter) Allow(ctx context.Context, key string, limit ratelimit.Limit) (ratelimit.Result, error) {
	s.keys = append(s.keys, key)
	return s.result, s.err
}

func echoUser(c *gin.Context) {
	userID, _ := GetUserID(c)
	c.String(http.StatusOK, userID+"|"+GetUserRole(c).String())
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	claims := &auth.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"}}
	claims.AppMetadata.Role = "admin"

	tests := []struct {
		name     string
		header   string
		verifier *stubVerifier
		status   int
		body     string
	}{
		{"missing header", "", &stubVerifier{claims: claims}, http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic abc", &stubVerifier{claims: claims}, http.StatusUnauthorized, ""},
		{"invalid token", "Bearer bad", &stubVerifier{err: errors.New("expired")}, http.StatusUnauthorized, ""},
		{"valid token", "Bearer good", &stubVerifier{claims: claims}, http.StatusOK, "user-1|admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/", NewAuthMiddleware(tt.verifier, logger.NewNopLogger()).RequireAuth(), echoUser)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(constants.HeaderAuthorization, tt.header)
			}
			w := serve(r, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}

func TestRequireAuthWith(t *testing.T) {
	var rejected int
	reject := func(c *gin.Context, status int, message string) {
		rejected = status
		c.JSON(status, gin.H{"error": message})
	}
	r := gin.New()
	r.GET("/", NewAuthMiddleware(&stubVerifier{err: errors.New("expired")}, logger.NewNopLogger()).RequireAuthWith(reject), echoUser)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderAuthorization, "Bearer bad")
	w := serve(r, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, rejected)
	assert.JSONEq(t, `{"error":"invalid or expired token"}`, w.Body.String())
}

func withUser(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(constants.ContextKeyUserID, userID)
			c.Set(constants.ContextKeyUserRole, role)
		}
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		enforcer := &stubEnforcer{allowed: true}
		r := gin.New()
		r.GET("/", withUser("u1", "admin"), NewPermissionMiddleware(enforcer, logger.NewNopLogger()).RequirePermission("transaction", "read"), echoUser)

		w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "admin", enforcer.subject)
	})

	t.Run("denied", func(t *testing.T) {
		r := gin.New()
		r.GET("/", withUser("u1", "user"), NewPermissionMiddleware(&stubEnforcer{}, logger.NewNopLogger()).RequirePermission("transaction", "read"), echoUser)
		assert.Equal(t, http.StatusForbidden, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		r := gin.New()
		r.GET("/", NewPermissionMiddleware(&stubEnforcer{allowed: true}, logger.NewNopLogger()).RequirePermission("transaction", "read"), echoUser)
		assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})

	t.Run("enforcer error", func(t *testing.T) {
		r := gin.New()
		r.GET("/", withUser("u1", "admin"), NewPermissionMiddleware(&stubEnforcer{err: errors.New("db")}, logger.NewNopLogger()).RequirePermission("transaction", "read"), echoUser)
		assert.Equal(t, http.StatusInternalServerError, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	})
}

func TestRateLimit(t *testing.T) {
	limit := ratelimit.Limit{Requests: 10, Window: time.Minute}

	t.Run("allowed per user", func(t *testing.T) {
		limiter := &stubLimiter{result: ratelimit.Result{Allowed: true, Remaining: 9}}
		r := gin.New()
		r.POST("/", withUser("u1", "user"), NewRateLimitMiddleware(limiter, logger.NewNopLogger()).Limit("invoice", limit), echoUser)

		w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "9", w.Header().Get("X-RateLimit-Remaining"))
		require.Len(t, limiter.keys, 1)
		assert.Equal(t, "invoice:user:u1", limiter.keys[0])
	})

	t.Run("exceeded", func(t *testing.T) {
		limiter := &stubLimiter{result: ratelimit.Result{Allowed: false, RetryAfter: 1500 * time.Millisecond}}
		r := gin.New()
		r.POST("/", withUser("u1", "user"), NewRateLimitMiddleware(limiter, logger.NewNopLogger()).Limit("invoice", limit), echoUser)

		w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
	})

	t.Run("custom rejection", func(t *testing.T) {
		limiter := &stubLimiter{result: ratelimit.Result{Allowed: false, RetryAfter: time.Second}}
		reject := func(c *gin.Context, status int, message string) {
			c.JSON(status, gin.H{"error": message})
		}
		r := gin.New()
		r.POST("/", withUser("u1", "user"), NewRateLimitMiddleware(limiter, logger.NewNopLogger()).LimitWith("invoice", limit, reject), echoUser)

		w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"error":"rate limit exceeded, please try again later"}`, w.Body.String())
	})

	t.Run("fails open", func(t *testing.T) {
		limiter := &stubLimiter{err: errors.New("redis down")}
		r := gin.New()
		r.POST("/", NewRateLimitMiddleware(limiter, logger.NewNopLogger()).Limit("invoice", limit), echoUser)

		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodPost, "/", nil)).Code)
		require.Len(t, limiter.keys, 1)
		assert.Contains(t, limiter.keys[0], "invoice:ip:")
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNopLogger()))
	r.GET("/", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderCallbackToken, "secret")
	w := serve(r, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRedactHeaders(t *testing.T) {
	lines := redactHeaders("POST / HTTP/1.1\r\nAuthorization: Bearer x\r\nX-Callback-Token: secret\r\nAccept: */*")
	assert.Contains(t, lines, "Authorization: *")
	assert.Contains(t, lines, "X-Callback-Token: *")
	assert.Contains(t, lines, "Accept: */*")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(constants.ContextKeyRequestID)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(constants.HeaderXRequestID))
	assert.Equal(t, w.Header().Get(constants.HeaderXRequestID), w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.HeaderXRequestID, "abc")
	assert.Equal(t, "abc", serve(r, req).Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://app.talentika.id"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://app.talentika.id")
	w := serve(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.talentika.id", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = serve(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
