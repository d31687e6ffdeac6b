package healthcheck

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck_Handler(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	testCases := []struct {
		name     string
		method   string
		path     string
		checks   map[string]Checker
		assertFn func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "healthy without checks",
			method: http.MethodGet,
			path:   "/health",
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `{}`, rec.Body.String())
			},
		},
		{
			name:   "failing dependency",
			method: http.MethodGet,
			path:   "/health",
			checks: map[string]Checker{
				"redis":   func(ctx context.Context) error { return errors.New("connection refused") },
				"questdb": func(ctx context.Context) error { return nil },
			},
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
				assert.JSONEq(t, `{"redis":"connection refused","questdb":"ok"}`, rec.Body.String())
			},
		},
		{
			name:   "other paths pass through",
			method: http.MethodGet,
			path:   "/metrics",
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusTeapot, rec.Code)
			},
		},
		{
			name:   "post is not a health check",
			method: http.MethodPost,
			path:   "/health",
			assertFn: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusTeapot, rec.Code)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hc := HealthCheck{Checks: tc.checks}
			rec := httptest.NewRecorder()
			hc.Handler(next).ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			tc.assertFn(t, rec)
		})
	}
}
