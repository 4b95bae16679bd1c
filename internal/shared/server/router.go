package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitable-backend/internal/account"
	"fitable-backend/internal/catalog"
	"fitable-backend/internal/history"
	"fitable-backend/internal/measurements"
	"fitable-backend/internal/recommendations"
	"fitable-backend/internal/references"
	"fitable-backend/internal/services/health"
	"fitable-backend/internal/shared/auth"
	"fitable-backend/internal/shared/config"
	"fitable-backend/internal/shared/metrics"
	"fitable-backend/internal/shared/server/middleware"
	"fitable-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts. Nil handlers are skipped.
type RouterDeps struct {
	Config                 config.Config
	Tokens                 *auth.Tokens
	Health                 *health.Handler
	MeasurementsHandler    *measurements.Handler
	ReferencesHandler      *references.Handler
	CatalogHandler         *catalog.Handler
	RecommendationsHandler *recommendations.Handler
	HistoryHandler         *history.Handler
	AccountHandler         *account.Handler
	// RateLimiter overrides the default limiter; tests inject a fixed clock.
	RateLimiter *middleware.RateLimiter
}

// readRoutes get a larger bucket than writes and recommendations.
var readRoutes = map[string]string{
	"GET /api/v1/measurements":         "READ",
	"GET /api/v1/references":           "READ",
	"GET /api/v1/history":              "READ",
	"GET /api/v1/brands":               "READ",
	"GET /api/v1/brands/:id/chart":     "READ",
	"GET /api/v1/me":                   "READ",
	"POST /api/v1/recommendations":     "RECOMMEND",
	"POST /api/v1/account/claim-guest": "DEFAULT",
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
	)

	r.GET("/metrics", metrics.Handler())
	public := r.Group("/api/v1")
	if deps.Health != nil {
		deps.Health.RegisterRoutes(public)
	}

	api := r.Group("/api/v1")
	api.Use(
		middleware.Auth(deps.Tokens),
		middleware.RateLimit(rateLimitConfig(deps)),
	)
	registerMeRoutes(api)
	if deps.MeasurementsHandler != nil {
		deps.MeasurementsHandler.RegisterRoutes(api)
	}
	if deps.ReferencesHandler != nil {
		deps.ReferencesHandler.RegisterRoutes(api)
	}
	if deps.CatalogHandler != nil {
		deps.CatalogHandler.RegisterRoutes(api)
	}
	if deps.RecommendationsHandler != nil {
		deps.RecommendationsHandler.RegisterRoutes(api)
	}
	if deps.HistoryHandler != nil {
		deps.HistoryHandler.RegisterRoutes(api)
	}
	if deps.AccountHandler != nil {
		deps.AccountHandler.RegisterRoutes(api)
	}

	return r
}

func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rps := deps.Config.RateLimitRPS
	burst := deps.Config.RateLimitBurst
	if rps <= 0 {
		rps = 2
	}
	if burst <= 0 {
		burst = 10
	}
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor:     middleware.GroupByRoute(readRoutes),
		Limiter:      deps.RateLimiter,
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT":   {Rate: rps, Burst: burst},
			"READ":      {Rate: rps * 5, Burst: burst * 3},
			"RECOMMEND": {Rate: rps, Burst: burst},
		},
	}
}

func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"userId":  middleware.UserIDFromContext(c),
			"isGuest": middleware.IsGuest(c),
		})
	})
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
