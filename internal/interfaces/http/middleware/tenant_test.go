package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTenantRouter(cfg TenantMiddlewareConfig, captured, fromCtx *string) *gin.Engine {
	router := gin.New()
	router.Use(TenantMiddlewareWithConfig(cfg))
	handler := func(c *gin.Context) {
		if id, ok := GetAgencyID(c); ok {
			*captured = id.String()
		}
		*fromCtx = logger.GetAgencyID(c.Request.Context())
		c.Status(http.StatusOK)
	}
	router.GET("/api/v1/sidebar/tree", handler)
	router.GET("/health", handler)
	return router
}

func TestTenantMiddleware(t *testing.T) {
	explicit := uuid.New()

	tests := []struct {
		name       string
		cfg        TenantMiddlewareConfig
		path       string
		header     string
		wantStatus int
		wantAgency string
	}{
		{
			name:       "header selects agency",
			cfg:        DefaultTenantConfig(),
			path:       "/api/v1/sidebar/tree",
			header:     explicit.String(),
			wantStatus: http.StatusOK,
			wantAgency: explicit.String(),
		},
		{
			name:       "missing header falls back to default agency",
			cfg:        DefaultTenantConfig(),
			path:       "/api/v1/sidebar/tree",
			wantStatus: http.StatusOK,
			wantAgency: DefaultAgencyID.String(),
		},
		{
			name:       "malformed header is rejected",
			cfg:        DefaultTenantConfig(),
			path:       "/api/v1/sidebar/tree",
			header:     "not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "required header is enforced",
			cfg:        TenantMiddlewareConfig{Required: true, Default: DefaultAgencyID},
			path:       "/api/v1/sidebar/tree",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "skip paths bypass tenant resolution",
			cfg:        TenantMiddlewareConfig{SkipPaths: []string{"/health"}, Required: true},
			path:       "/health",
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured, fromCtx string
			router := newTenantRouter(tt.cfg, &captured, &fromCtx)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(TenantHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantAgency, captured)
			// context loggers see the same agency
			assert.Equal(t, tt.wantAgency, fromCtx)
			if tt.wantStatus == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), "ERR_INVALID_TENANT")
			}
		})
	}
}

func TestGetAgencyID_Unset(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	id, ok := GetAgencyID(c)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}
