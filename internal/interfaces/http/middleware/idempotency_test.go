package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	redispkg "legalease.backend/pkg/redis"
)

func startMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable in this environment: %v", err)
	}
	t.Cleanup(srv.Close)

	cli := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	redispkg.SetClient(cli)
	t.Cleanup(func() { _ = cli.Close() })
	return srv
}

func idempotentRouter(userID uuid.UUID, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(UserIDKey, userID)
		c.Next()
	})
	r.POST("/checkout", IdempotencyMiddleware(), handler)
	return r
}

func postWithKey(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	if key != "" {
		req.Header.Set(IdempotencyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestIdempotencyMiddleware_NoHeaderPassthrough(t *testing.T) {
	calls := 0
	r := idempotentRouter(uuid.New(), func(c *gin.Context) {
		calls++
		c.Status(http.StatusNoContent)
	})

	require.Equal(t, http.StatusNoContent, postWithKey(r, "").Code)
	require.Equal(t, http.StatusNoContent, postWithKey(r, "").Code)
	require.Equal(t, 2, calls)
}

func TestIdempotencyMiddleware_ReplaysSuccess(t *testing.T) {
	startMiniRedis(t)
	calls := 0
	r := idempotentRouter(uuid.New(), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"reference": "contract-1"})
	})

	first := postWithKey(r, "key-1")
	require.Equal(t, http.StatusCreated, first.Code)

	second := postWithKey(r, "key-1")
	require.Equal(t, http.StatusCreated, second.Code)
	require.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	require.JSONEq(t, first.Body.String(), second.Body.String())
	require.Equal(t, 1, calls)
}

func TestIdempotencyMiddleware_FailureReleasesKey(t *testing.T) {
	srv := startMiniRedis(t)
	userID := uuid.New()
	r := idempotentRouter(userID, func(c *gin.Context) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "gateway"})
	})

	require.Equal(t, http.StatusBadGateway, postWithKey(r, "key-2").Code)
	require.False(t, srv.Exists("idempotency:"+userID.String()+":key-2"))
}

func TestIdempotencyMiddleware_InFlightConflict(t *testing.T) {
	srv := startMiniRedis(t)
	userID := uuid.New()
	require.NoError(t, srv.Set("idempotency:"+userID.String()+":key-3", "processing"))

	r := idempotentRouter(userID, func(c *gin.Context) { c.Status(http.StatusCreated) })
	w := postWithKey(r, "key-3")
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "ERR_IDEMPOTENCY_CONFLICT")
}

func TestIdempotencyMiddleware_RedisDownPassesThrough(t *testing.T) {
	redispkg.SetClient(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:0"}))
	r := idempotentRouter(uuid.New(), func(c *gin.Context) { c.Status(http.StatusAccepted) })

	require.Equal(t, http.StatusAccepted, postWithKey(r, "key-4").Code)
}

func TestIdempotencyMiddleware_LockErrorPassesThrough(t *testing.T) {
	startMiniRedis(t)
	origSetNX := redisSetNX
	t.Cleanup(func() { redisSetNX = origSetNX })
	redisSetNX = func(context.Context, string, interface{}, time.Duration) (bool, error) {
		return false, errors.New("connection reset")
	}

	calls := 0
	r := idempotentRouter(uuid.New(), func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})

	require.Equal(t, http.StatusCreated, postWithKey(r, "key-5").Code)
	require.Equal(t, 1, calls)
}

func TestResponseWriter_Write(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	w := responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}

	n, err := w.Write([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "ok", w.body.String())
	require.Equal(t, "ok", rec.Body.String())
}
