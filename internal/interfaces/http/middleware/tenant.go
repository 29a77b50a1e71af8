package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/agency/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TenantHeaderKey names the header that selects the agency
const TenantHeaderKey = "X-Tenant-ID"

// DefaultAgencyID is the seeded agency used when no tenant header is sent
var DefaultAgencyID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// SkipPaths are served without tenant context (health, metrics)
	SkipPaths []string
	// Required rejects requests without X-Tenant-ID instead of falling
	// back to Default
	Required bool
	// Default is the agency used when the header is absent
	Default uuid.UUID
	Logger  *zap.Logger
}

// DefaultTenantConfig returns default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		SkipPaths: []string{"/health", "/metrics"},
		Default:   DefaultAgencyID,
	}
}

// TenantMiddleware resolves the agency from X-Tenant-ID with default configuration
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig resolves the agency for each request and
// stores it under logger.GinAgencyIDKey and on the request context.
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if slices.ContainsFunc(cfg.SkipPaths, func(p string) bool {
			return path == p || strings.HasPrefix(path, p+"/")
		}) {
			c.Next()
			return
		}

		agencyID := cfg.Default
		if raw := c.GetHeader(TenantHeaderKey); raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				log.Debug("Rejected malformed tenant header", zap.String("tenant_id", raw))
				respondInvalidTenant(c, "Invalid tenant ID format")
				return
			}
			agencyID = parsed
		} else if cfg.Required || agencyID == uuid.Nil {
			respondInvalidTenant(c, "Tenant identification required")
			return
		}

		id := agencyID.String()
		c.Set(logger.GinAgencyIDKey, id)
		c.Request = c.Request.WithContext(logger.WithAgencyID(c.Request.Context(), id))
		c.Next()
	}
}

func respondInvalidTenant(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeInvalidTenant,
		message,
		GetRequestID(c),
	))
}

// GetAgencyID returns the agency resolved by the tenant middleware
func GetAgencyID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(logger.GinAgencyIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
