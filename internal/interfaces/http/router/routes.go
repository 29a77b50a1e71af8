package router

import (
	"github.com/agency/backend/internal/infrastructure/config"
	"github.com/agency/backend/internal/infrastructure/logger"
	"github.com/agency/backend/internal/infrastructure/metrics"
	"github.com/agency/backend/internal/interfaces/http/handler"
	"github.com/agency/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	Sidebar *handler.SidebarHandler
	Access  *handler.AccessHandler
	Agency  *handler.AgencyHandler
	System  *handler.SystemHandler
}

// Options configures the middleware chain
type Options struct {
	Logger  *zap.Logger
	HTTP    config.HTTPConfig
	Metrics *metrics.Metrics
	Tracing middleware.TracingConfig
	// WriteLimiter throttles grant toggles and option edits per agency and client; nil disables it.
	WriteLimiter *middleware.RateLimiter
}

// NewEngine builds the gin engine with the full middleware chain and every route
func NewEngine(h Handlers, opts Options) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(opts.HTTP.TrustedProxies); err != nil {
		return nil, err
	}
	middleware.SetupValidator()

	engine.Use(
		logger.Recovery(log),
		middleware.RequestID(),
		logger.GinMiddleware(log),
		middleware.TracingWithConfig(opts.Tracing),
		middleware.TenantMiddleware(),
		middleware.TracingAttributes(),
		middleware.HTTPMetrics(opts.Metrics, "/health", "/metrics"),
		middleware.CORSWithConfig(middleware.CORSConfigFromHTTP(opts.HTTP)),
		middleware.Secure(),
	)
	if opts.HTTP.MaxBodyBytes > 0 {
		engine.Use(middleware.BodyLimit(opts.HTTP.MaxBodyBytes))
	}

	engine.GET("/health", h.System.Health)
	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	var writes []gin.HandlerFunc
	if opts.WriteLimiter != nil {
		writes = append(writes, middleware.RateLimit(opts.WriteLimiter))
	}

	sidebar := NewDomainGroup("sidebar", "/sidebar").
		GuardWrites(writes...).
		GET("/tree", h.Sidebar.GetTree).
		GET("/tree/visible", h.Sidebar.GetVisibleTree).
		GET("/groups", h.Sidebar.GetGroups).
		POST("/options", h.Sidebar.CreateOption).
		PUT("/options/:id", h.Sidebar.UpdateOption).
		DELETE("/options/:id", h.Sidebar.DeleteOption)

	access := NewDomainGroup("access", "/access").
		GuardWrites(writes...).
		GET("/permission-sets/:id/grants", h.Access.ListGrants).
		GET("/check", h.Access.CheckAccess).
		PUT("/grants", h.Access.Toggle).
		GET("/audit-log", h.Access.ListAuditLog)

	agencies := NewDomainGroup("agencies", "/agencies").
		POST("", h.Agency.Register)

	agency := NewDomainGroup("agency", "/agency").
		GuardWrites(writes...).
		GET("", h.Agency.Get).
		GET("/sub-accounts", h.Agency.ListSubAccounts).
		POST("/sub-accounts", h.Agency.CreateSubAccount)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo)

	NewRouter(engine).Register(sidebar, access, agencies, agency, system).Setup()

	return engine, nil
}
