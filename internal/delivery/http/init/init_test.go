//go:build !integration

package http_init

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	http_health "github.com/humanbelnik/cinegraph/internal/delivery/http/health"
	http_log_middleware "github.com/humanbelnik/cinegraph/internal/delivery/http/middleware/log"
	"github.com/stretchr/testify/assert"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type ControllerPoolUnitSuite struct {
	suite.Suite
}

type okProber struct{}

func (okProber) Probe(context.Context) error { return nil }

func newPool() *ControllerPool {
	gin.SetMode(gin.TestMode)
	pool := NewControllerPool(WithCORSOrigins([]string{"http://localhost:3000"}))
	pool.Add(http_health.New(okProber{}))
	pool.Register()
	return pool
}

func (suite *ControllerPoolUnitSuite) TestRouting(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		target       string
		requestID    string
		expectStatus int
	}{
		{
			name:         "Should mount controllers under api prefix",
			target:       "/api/health",
			expectStatus: http.StatusOK,
		},
		{
			name:         "Should not mount controllers at root",
			target:       "/health",
			expectStatus: http.StatusNotFound,
		},
		{
			name:         "Should keep caller request id",
			target:       "/api/health",
			requestID:    "req-42",
			expectStatus: http.StatusOK,
		},
		{
			name:         "Should expose prometheus metrics",
			target:       "/metrics",
			expectStatus: http.StatusOK,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			pool := newPool()

			req := httptest.NewRequest(http.MethodGet, tc.target, nil)
			if tc.requestID != "" {
				req.Header.Set(http_log_middleware.RequestIDHeader, tc.requestID)
			}
			w := httptest.NewRecorder()
			pool.Handler().ServeHTTP(w, req)

			assert.Equal(t, tc.expectStatus, w.Code)
			if tc.requestID != "" {
				assert.Equal(t, tc.requestID, w.Header().Get(http_log_middleware.RequestIDHeader))
			} else {
				assert.NotEmpty(t, w.Header().Get(http_log_middleware.RequestIDHeader))
			}
		})
	}
}

func (suite *ControllerPoolUnitSuite) TestCORS(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		origin      string
		expectAllow string
	}{
		{name: "Should allow configured origin", origin: "http://localhost:3000", expectAllow: "http://localhost:3000"},
		{name: "Should not echo unknown origin", origin: "http://evil.example", expectAllow: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			pool := newPool()

			req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
			req.Header.Set("Origin", tc.origin)
			w := httptest.NewRecorder()
			pool.Handler().ServeHTTP(w, req)

			assert.Equal(t, tc.expectAllow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestControllerPoolUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(ControllerPoolUnitSuite))
}
