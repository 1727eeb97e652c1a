package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"legalease.backend/internal/config"
)

func healthyEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":        "postgres://u:p@localhost:5432/legalease",
		"JWT_SECRET":          strings.Repeat("s", 32),
		"PAYSTACK_SECRET_KEY": "sk_test_abc",
		"APP_URL":             "https://legalease.ng",
		"STORAGE_ENDPOINT":    "https://proj.supabase.co/storage/v1/s3",
		"STORAGE_ACCESS_KEY":  "ak",
		"STORAGE_SECRET_KEY":  "sk",
		"STORAGE_PUBLIC_URL":  "https://proj.supabase.co/storage/v1/object/public",
	}
}

func lookupMap(env map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestHealthHandler_Check(t *testing.T) {
	broken := healthyEnv()
	delete(broken, "JWT_SECRET")

	tests := []struct {
		name     string
		env      map[string]string
		ping     func(ctx context.Context) error
		code     int
		status   string
		database string
	}{
		{
			name:     "healthy",
			env:      healthyEnv(),
			ping:     func(context.Context) error { return nil },
			code:     http.StatusOK,
			status:   "healthy",
			database: "ok",
		},
		{
			name:     "no database configured",
			env:      healthyEnv(),
			code:     http.StatusOK,
			status:   "healthy",
			database: "skipped",
		},
		{
			name:     "database down",
			env:      healthyEnv(),
			ping:     func(context.Context) error { return errors.New("dial tcp: connection refused") },
			code:     http.StatusServiceUnavailable,
			status:   "unhealthy",
			database: "unreachable",
		},
		{
			name:     "missing required variable",
			env:      broken,
			ping:     func(context.Context) error { return nil },
			code:     http.StatusServiceUnavailable,
			status:   "unhealthy",
			database: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(lookupMap(tt.env), tt.ping, "1.2.3")
			r := newRouter()
			r.GET("/api/health", h.Check)

			w := doJSON(r, http.MethodGet, "/api/health", nil)
			require.Equal(t, tt.code, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.status, body["status"])
			assert.Equal(t, tt.database, body["database"])
			assert.Equal(t, "1.2.3", body["version"])
			assert.NotEmpty(t, body["timestamp"])

			env := body["env"].(map[string]interface{})
			assert.Equal(t, tt.code == http.StatusOK || tt.database == "unreachable", env["valid"])
		})
	}
}

func TestHealthHandler_ReportsMissingVariables(t *testing.T) {
	h := NewHealthHandler(lookupMap(map[string]string{}), nil, "dev")
	r := newRouter()
	r.GET("/api/health", h.Check)

	w := doJSON(r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	errs := decode(t, w)["env"].(map[string]interface{})["errors"].([]interface{})
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs[0], "DATABASE_URL is required")
}
