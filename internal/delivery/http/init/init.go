package http_init

import (
	"log/slog"
	"net"
	"net/http"
	"os"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	http_log_middleware "github.com/humanbelnik/cinegraph/internal/delivery/http/middleware/log"
	http_metrics_middleware "github.com/humanbelnik/cinegraph/internal/delivery/http/middleware/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiPrefix = "/api"

type Controller interface {
	RegisterRoutes(router *gin.RouterGroup)
}

type ControllerPool struct {
	pool   []Controller
	rg     *gin.RouterGroup
	engine *gin.Engine
	logger *slog.Logger
}

type PoolOption func(*poolOptions)

type poolOptions struct {
	logger      *slog.Logger
	corsOrigins []string
}

func WithLogger(logger *slog.Logger) PoolOption {
	return func(o *poolOptions) {
		o.logger = logger
	}
}

// WithCORSOrigins restricts cross-origin callers. Without it, or with "*",
// any origin is allowed.
func WithCORSOrigins(origins []string) PoolOption {
	return func(o *poolOptions) {
		o.corsOrigins = origins
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, http_log_middleware.RequestIDHeader)
	cfg.ExposeHeaders = []string{http_log_middleware.RequestIDHeader}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func NewControllerPool(opts ...PoolOption) *ControllerPool {
	o := &poolOptions{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		http_log_middleware.RequestLogger(o.logger),
		http_metrics_middleware.Observe(),
		cors.New(corsConfig(o.corsOrigins)),
	)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &ControllerPool{
		pool:   make([]Controller, 0, 10),
		rg:     engine.Group(apiPrefix),
		engine: engine,
		logger: o.logger,
	}
}

func (pool *ControllerPool) Register() {
	for _, c := range pool.pool {
		c.RegisterRoutes(pool.rg)
	}
}

func (pool *ControllerPool) Handler() http.Handler {
	return pool.engine
}

func (pool *ControllerPool) RunAll(host, port string) {
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           pool.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	pool.logger.Info("http server listening", slog.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil {
		pool.logger.Error("failed to run HTTP server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func (pool *ControllerPool) Add(c Controller) {
	pool.pool = append(pool.pool, c)
}
