package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"garage/internal/infrastructure/auth"
	"garage/internal/infrastructure/permission"
	"garage/internal/infrastructure/ratelimit"
	"garage/internal/shared/authorization"
	"garage/internal/shared/constants"
	"garage/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type seen struct {
	userID   uint
	role     string
	centerID any
	hasCtr   bool
}

func newEngine(mw ...gin.HandlerFunc) (*gin.Engine, *seen) {
	s := &seen{}
	r := gin.New()
	r.Use(mw...)
	r.GET("/orders/:id", func(c *gin.Context) {
		s.userID = c.GetUint(constants.ContextKeyUserID)
		s.role = c.GetString(constants.ContextKeyUserRole)
		s.centerID, s.hasCtr = c.Get(constants.ContextKeyServiceCenterID)
		c.Status(http.StatusOK)
	})
	return r, s
}

func do(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/orders/7", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	jwt := auth.NewJWTService("test-secret", 30)
	mw := NewAuthMiddleware(jwt, logger.NewNopLogger())
	center := uint(3)
	token, err := jwt.Generate(9, authorization.RoleAttendant, &center)
	require.NoError(t, err)

	t.Run("valid token populates context", func(t *testing.T) {
		r, s := newEngine(mw.RequireAuth())
		w := do(r, map[string]string{"Authorization": "Bearer " + token.Token})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(9), s.userID)
		assert.Equal(t, "attendant", s.role)
		assert.True(t, s.hasCtr)
		assert.Equal(t, uint(3), s.centerID)
	})

	t.Run("missing header", func(t *testing.T) {
		r, _ := newEngine(mw.RequireAuth())
		w := do(r, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "missing authorization token")
	})

	t.Run("wrong scheme", func(t *testing.T) {
		r, _ := newEngine(mw.RequireAuth())
		w := do(r, map[string]string{"Authorization": "Basic abc"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := auth.NewJWTService("other", 30).Generate(9, authorization.RoleAdmin, nil)
		require.NoError(t, err)

		r, _ := newEngine(mw.RequireAuth())
		w := do(r, map[string]string{"Authorization": "Bearer " + other.Token})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid or expired token")
	})

	t.Run("admin without center", func(t *testing.T) {
		admin, err := jwt.Generate(1, authorization.RoleAdmin, nil)
		require.NoError(t, err)

		r, s := newEngine(mw.RequireAuth())
		w := do(r, map[string]string{"Authorization": "Bearer " + admin.Token})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, s.hasCtr)
	})
}

func withRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set(constants.ContextKeyUserID, uint(1))
			c.Set(constants.ContextKeyUserRole, role)
		}
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	enforcer, err := permission.NewMemoryEnforcer(logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, enforcer.EnsureDefaultPolicies())
	pm := NewPermissionMiddleware(enforcer, logger.NewNopLogger())

	tests := []struct {
		name     string
		role     string
		action   permission.Action
		wantCode int
	}{
		{"admin may delete", "admin", permission.ActionDelete, http.StatusOK},
		{"technician may start", "technician", permission.ActionStart, http.StatusOK},
		{"technician may not cancel", "technician", permission.ActionCancel, http.StatusForbidden},
		{"attendant may not export", "attendant", permission.ActionExport, http.StatusForbidden},
		{"anonymous", "", permission.ActionRead, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newEngine(withRole(tt.role), pm.RequirePermission(permission.ResourceServices, tt.action))
			w := do(r, nil)
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

type failingEnforcer struct{}

func (failingEnforcer) Enforce(authorization.UserRole, permission.Resource, permission.Action) (bool, error) {
	return false, errors.New("adapter down")
}

func TestRequirePermission_EnforcerError(t *testing.T) {
	pm := NewPermissionMiddleware(failingEnforcer{}, logger.NewNopLogger())
	r, _ := newEngine(withRole("admin"), pm.RequirePermission(permission.ResourceServices, permission.ActionRead))

	w := do(r, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequireRole(t *testing.T) {
	pm := NewPermissionMiddleware(failingEnforcer{}, logger.NewNopLogger())

	r, _ := newEngine(withRole("manager"), pm.RequireRole(authorization.RoleAdmin))
	assert.Equal(t, http.StatusForbidden, do(r, nil).Code)

	r, _ = newEngine(withRole("admin"), pm.RequireRole(authorization.RoleAdmin))
	assert.Equal(t, http.StatusOK, do(r, nil).Code)
}

func TestRequestID(t *testing.T) {
	r, _ := newEngine(RequestID())

	w := do(r, map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))

	w = do(r, nil)
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}

type stubLimiter struct {
	res  ratelimit.Result
	err  error
	keys []string
}

func (s *stubLimiter) Allow(_ context.Context, key string, limit int, _ time.Duration) (ratelimit.Result, error) {
	s.keys = append(s.keys, key)
	s.res.Limit = limit
	return s.res, s.err
}

func (s *stubLimiter) Reset(context.Context, string) error { return nil }

func TestRateLimiter(t *testing.T) {
	t.Run("allowed sets headers", func(t *testing.T) {
		stub := &stubLimiter{res: ratelimit.Result{Allowed: true, Remaining: 4}}
		r, _ := newEngine(withRole("admin"), NewRateLimiter(stub, 5, time.Minute, logger.NewNopLogger()).Limit())

		w := do(r, nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
		assert.Equal(t, []string{"user:1"}, stub.keys)
	})

	t.Run("denied", func(t *testing.T) {
		stub := &stubLimiter{res: ratelimit.Result{Allowed: false, RetryAfter: 1500 * time.Millisecond}}
		r, _ := newEngine(NewRateLimiter(stub, 5, time.Minute, logger.NewNopLogger()).Limit())

		w := do(r, nil)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "2", w.Header().Get("Retry-After"))
		require.Len(t, stub.keys, 1)
		assert.Contains(t, stub.keys[0], "ip:")
	})

	t.Run("limiter error fails open", func(t *testing.T) {
		stub := &stubLimiter{err: errors.New("redis down")}
		r, _ := newEngine(NewRateLimiter(stub, 5, time.Minute, logger.NewNopLogger()).Limit())

		assert.Equal(t, http.StatusOK, do(r, nil).Code)
	})
}

func TestCORS(t *testing.T) {
	r, _ := newEngine(CORS([]string{"https://app.example.com"}))

	w := do(r, map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, map[string]string{"Origin": "https://evil.example.com"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodOptions, "/orders/7", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(logger.NewNopLogger()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

type routeRecorder struct {
	route  string
	status int
}

func (r *routeRecorder) ObserveHTTP(_ string, route string, status int, _ time.Duration) {
	r.route = route
	r.status = status
}

func TestMetrics(t *testing.T) {
	rec := &routeRecorder{}
	r, _ := newEngine(Metrics(rec))

	do(r, nil)

	assert.Equal(t, "/orders/:id", rec.route)
	assert.Equal(t, http.StatusOK, rec.status)
}
