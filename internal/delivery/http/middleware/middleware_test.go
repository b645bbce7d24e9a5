package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"career-coach-backend/config"
	"career-coach-backend/internal/domain"
	"career-coach-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubAuthUC struct {
	calls   int
	lastSub string
	err     error
}

func (s *stubAuthUC) EnsureUser(ctx context.Context, externalID, email string) (*domain.User, error) {
	s.calls++
	s.lastSub = externalID
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{ID: "u1", ExternalID: externalID, Email: email}, nil
}

func (s *stubAuthUC) CurrentUser(ctx context.Context) (*domain.User, error) {
	return nil, nil
}

const testSecret = "test-secret"

func signHS256(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func authRouter(authUC domain.AuthUsecase) *gin.Engine {
	r := gin.New()
	cfg := &config.Config{SupabaseJWTSecret: testSecret}
	r.GET("/me", AuthMiddleware(nil, cfg, authUC), func(c *gin.Context) {
		id, _ := c.Request.Context().Value(domain.KeyExternalID).(string)
		c.String(http.StatusOK, id)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	t.Run("Should put the token subject into the request context", func(t *testing.T) {
		authUC := &stubAuthUC{}
		r := authRouter(authUC)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signHS256(t, jwt.MapClaims{"sub": "ext-1", "email": "a@b.com", "exp": time.Now().Add(time.Hour).Unix()}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ext-1", w.Body.String())
		assert.Equal(t, 1, authUC.calls)
	})

	t.Run("Should reject missing token without provisioning", func(t *testing.T) {
		authUC := &stubAuthUC{}
		r := authRouter(authUC)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 0, authUC.calls)
	})

	t.Run("Should reject expired token", func(t *testing.T) {
		authUC := &stubAuthUC{}
		r := authRouter(authUC)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signHS256(t, jwt.MapClaims{"sub": "ext-1", "exp": time.Now().Add(-time.Hour).Unix()}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, 0, authUC.calls)
	})

	t.Run("Should reject token without subject", func(t *testing.T) {
		authUC := &stubAuthUC{err: apperror.Unauthorized("Unauthorized")}
		r := authRouter(authUC)

		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signHS256(t, jwt.MapClaims{"email": "a@b.com"}))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCronSecret(t *testing.T) {
	newRouter := func(secret string) *gin.Engine {
		r := gin.New()
		r.POST("/job", CronSecret(secret), func(c *gin.Context) { c.Status(http.StatusAccepted) })
		return r
	}

	tests := []struct {
		name   string
		secret string
		header string
		want   int
	}{
		{"matching secret", "s3cret", "s3cret", http.StatusAccepted},
		{"wrong secret", "s3cret", "nope", http.StatusUnauthorized},
		{"missing header", "s3cret", "", http.StatusUnauthorized},
		{"route disabled", "", "anything", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/job", nil)
			if tt.header != "" {
				req.Header.Set(CronSecretHeader, tt.header)
			}
			w := httptest.NewRecorder()
			newRouter(tt.secret).ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		id, _ := c.Get("RequestID")
		c.String(http.StatusOK, id.(string))
	})

	t.Run("Should keep the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Body.String())
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})

	t.Run("Should assign an id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, w.Body.String(), 36)
	})
}

func TestRateLimitWithoutRedis(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(PerClientIP(2, time.Minute)))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		last = httptest.NewRecorder()
		r.ServeHTTP(last, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	assert.Equal(t, "0", last.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}

func TestLocalCounter(t *testing.T) {
	l := newLocalCounter()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	n, resetAt := l.hit("a", time.Minute, now)
	assert.Equal(t, 1, n)
	assert.Equal(t, now.Add(time.Minute), resetAt)

	n, _ = l.hit("a", time.Minute, now.Add(30*time.Second))
	assert.Equal(t, 2, n)

	n, _ = l.hit("b", time.Minute, now.Add(30*time.Second))
	assert.Equal(t, 1, n, "keys are counted separately")

	n, resetAt = l.hit("a", time.Minute, now.Add(time.Minute))
	assert.Equal(t, 1, n, "window restarts at its reset time")
	assert.Equal(t, now.Add(2*time.Minute), resetAt)

	l.hit("c", time.Minute, now.Add(3*time.Minute))
	assert.NotContains(t, l.windows, "b", "expired windows are swept")
	assert.Contains(t, l.windows, "c")
}

func TestPerCallerAIKeysByIdentity(t *testing.T) {
	rule := PerCallerAI(1, time.Minute)
	assert.True(t, rule.FailClosed)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/v1/resume/improve", nil)
	c.Request = req.WithContext(context.WithValue(req.Context(), domain.KeyExternalID, "ext-1"))
	assert.Equal(t, "ext-1", rule.Key(c))
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/app", func(c *gin.Context) { _ = c.Error(apperror.Conflict("busy")) })
	r.GET("/raw", func(c *gin.Context) { _ = c.Error(assert.AnError) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "busy")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/raw", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
