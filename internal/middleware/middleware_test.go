package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrms/internal/config"
	"go-hrms/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(config.Get().JWT.Secret))
	assert.NoError(t, err)
	return s
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/p", AuthMiddleware(), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextEmployeeID))
	})

	call := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/p", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("missing token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, call("").Code)
	})

	t.Run("valid access token", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"user_id": "u-1", "employee_id": "e-1", "role": "HR", "typ": "access",
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		w := call("Bearer " + tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "e-1", w.Body.String())
	})

	t.Run("expired token", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"user_id": "u-1", "employee_id": "e-1", "typ": "access",
			"exp": time.Now().Add(-time.Minute).Unix(),
		})
		w := call("Bearer " + tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("refresh token rejected", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{
			"user_id": "u-1", "employee_id": "e-1", "typ": "refresh",
			"exp": time.Now().Add(time.Minute).Unix(),
		})
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+tok).Code)
	})

	t.Run("missing employee claim", func(t *testing.T) {
		tok := signToken(t, jwt.MapClaims{"user_id": "u-1", "exp": time.Now().Add(time.Minute).Unix()})
		assert.Equal(t, http.StatusUnauthorized, call("Bearer "+tok).Code)
	})
}

type fakeEnforcer struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeEnforcer) Enforce(req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func TestRBACAuthorize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(svc RBACService, employeeID string) int {
		r := gin.New()
		r.GET("/p", func(c *gin.Context) {
			if employeeID != "" {
				c.Set(ContextEmployeeID, employeeID)
			}
		}, RBACAuthorize(svc, "leave", "approve"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/p", nil))
		return w.Code
	}

	t.Run("allowed", func(t *testing.T) {
		f := &fakeEnforcer{allowed: true}
		assert.Equal(t, http.StatusNoContent, run(f, "e-1"))
		assert.Equal(t, domain.EnforceRequest{EmployeeID: "e-1", Module: "leave", Action: "approve"}, f.got)
	})

	t.Run("forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, run(&fakeEnforcer{}, "e-1"))
	})

	t.Run("no auth context", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, run(&fakeEnforcer{allowed: true}, ""))
	})

	t.Run("enforcer error", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, run(&fakeEnforcer{err: errors.New("boom")}, "e-1"))
	})
}

func TestIdempotency_ReplaysCachedResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	cacheKey := "idemp:/orders:u-1:abc"
	mock.ExpectGet(cacheKey).SetVal(`{"success":true,"message":"Created successfully"}`)

	r := gin.New()
	r.POST("/orders", func(c *gin.Context) {
		c.Set("user_id_validated", "u-1")
	}, Idempotency(rdb, zap.NewNop()), func(c *gin.Context) {
		t.Fatal("handler must not run for a replayed request")
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Created successfully")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_LockHeld(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rdb, mock := redismock.NewClientMock()

	cacheKey := "idemp:/orders:u-1:abc"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", idempotencyLockTTL).SetVal(false)

	r := gin.New()
	r.POST("/orders", func(c *gin.Context) {
		c.Set("user_id_validated", "u-1")
	}, Idempotency(rdb, zap.NewNop()), func(c *gin.Context) {
		t.Fatal("handler must not run while another request holds the lock")
	})

	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{}`))
	req.Header.Set("Idempotency-Key", "abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimitByUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/p", func(c *gin.Context) { c.Set(ContextUserID, "u-1") }, RateLimitByUser(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w1 := httptest.NewRecorder()
	r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/p", nil))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/p", nil))

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}
