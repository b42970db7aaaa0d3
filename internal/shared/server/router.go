package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"planwise-backend/internal/admin"
	"planwise-backend/internal/assistant"
	googleauth "planwise-backend/internal/auth"
	"planwise-backend/internal/billscan"
	"planwise-backend/internal/catalog"
	"planwise-backend/internal/recommendations"
	"planwise-backend/internal/requests"
	"planwise-backend/internal/services/health"
	"planwise-backend/internal/shared/config"
	"planwise-backend/internal/shared/metrics"
	"planwise-backend/internal/shared/server/middleware"
	"planwise-backend/internal/shared/server/respond"
	"planwise-backend/internal/users"
)

// RouterDeps carries the fully built handlers; bootstrap assembles them.
type RouterDeps struct {
	Config                 config.Config
	CatalogHandler         *catalog.Handler
	RecommendationsHandler *recommendations.Handler
	RequestsHandler        *requests.Handler
	BillScanHandler        *billscan.Handler
	AssistantHandler       *assistant.Handler
	UsersHandler           *users.Handler
	AdminHandler           *admin.Handler
	GoogleAuth             *googleauth.GoogleService
	Health                 *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(rateLimitConfig()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, deps.Health.Status(c.Request.Context()))
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}
	if deps.RecommendationsHandler != nil {
		deps.RecommendationsHandler.RegisterRoutes(api)
	}
	if deps.RequestsHandler != nil {
		deps.RequestsHandler.RegisterRoutes(api)
	}
	if deps.BillScanHandler != nil {
		deps.BillScanHandler.RegisterRoutes(api)
	}
	if deps.AssistantHandler != nil {
		deps.AssistantHandler.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.AdminHandler != nil {
		deps.AdminHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitConfig classifies endpoints by cost. Catalog reads are cheap;
// recommendation generation and bill scanning do real work per call.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"BROWSE":  {Rate: 20, Burst: 40},
			"COMPUTE": {Rate: 2, Burst: 5},
			"DEFAULT": {Rate: 10, Burst: 20},
		},
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			path := c.Request.URL.Path
			switch {
			case strings.HasPrefix(path, "/api/v1/recommendations"),
				strings.HasPrefix(path, "/api/v1/bills"),
				strings.HasPrefix(path, "/api/v1/assistant"):
				return "COMPUTE"
			case c.Request.Method == http.MethodGet && strings.HasPrefix(path, "/api/v1/plans"):
				return "BROWSE"
			default:
				return ""
			}
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
