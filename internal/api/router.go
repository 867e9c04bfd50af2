package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/omopgraph/omopgraph/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	DB          Pinger
	Schema      SchemaChecker
	Graph       GraphService
	CORSOrigins []string
	Version     string
	MaxDepth    int
}

// Router-level limits.
const (
	maxBodySize = 1 << 10 // traversal routes take no body
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}
	if allowAllOrigins(deps.CORSOrigins) {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.CORSOrigins
	}

	r.Use(cors.New(corsCfg))
	r.Use(middleware.PrometheusMiddleware())
}

// registerRoutes sets up all route handlers on the given router group.
func registerRoutes(r *gin.RouterGroup, deps *RouterDeps) {
	health := NewHealthHandler(deps.DB, deps.Schema, deps.Log, deps.Version)
	graph := NewGraphHandler(deps.Graph, deps.Log, deps.MaxDepth)

	r.GET("/health", health.Liveness)
	r.GET("/ready", health.Readiness)

	r.GET("/recursive_relationships/:start_id/:max_depth", graph.RecursiveRelationships)
	r.GET("/recursive_relationships_limited/:start_id/:max_depth", graph.RecursiveRelationshipsLimited)
	r.GET("/recursive_all_relationships/:start_id/:max_depth", graph.RecursiveAllRelationships)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(r, deps)
	registerRoutes(&r.RouterGroup, deps)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, ErrCodeNotFound, "route not found")
	})

	return r
}

// NewMetricsRouter serves the Prometheus registry on its own listener.
func NewMetricsRouter() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
