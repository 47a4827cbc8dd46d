package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/safebite/chaintrace/internal/chain/domain"
	"github.com/safebite/chaintrace/internal/config"
	"github.com/safebite/chaintrace/internal/observability"
	"github.com/safebite/chaintrace/internal/observability/logger"
	"github.com/safebite/chaintrace/internal/observability/metrics"
	"github.com/safebite/chaintrace/internal/observability/tracing"
	"github.com/safebite/chaintrace/internal/qr"
	"github.com/safebite/chaintrace/internal/validate"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("server",
	fx.Provide(
		newQRService,
		New,
		NewEngine,
	),
	fx.Invoke(Run),
)

func newQRService(cfg config.Config) *qr.Service {
	return qr.New(cfg.FrontendURL)
}

// Params aggregates the server's injected dependencies.
type Params struct {
	fx.In

	Cfg     config.Config
	Obs     observability.Config
	Log     *zap.Logger
	Gateway domain.Gateway
	QR      *qr.Service
	Metrics *metrics.HTTPMetrics `optional:"true"`
}

// Server holds the HTTP handlers and their collaborators.
type Server struct {
	cfg     config.Config
	obs     observability.Config
	log     *zap.Logger
	gateway domain.Gateway
	qr      *qr.Service
	metrics *metrics.HTTPMetrics
}

func New(p Params) *Server {
	return &Server{
		cfg:     p.Cfg,
		obs:     p.Obs,
		log:     p.Log,
		gateway: p.Gateway,
		qr:      p.QR,
		metrics: p.Metrics,
	}
}

// NewEngine assembles the gin engine with the full middleware chain and all
// routes registered.
func NewEngine(s *Server) *gin.Engine {
	if s.obs.Debug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logger.GinMiddleware(logger.MiddlewareConfig{Debug: s.obs.Debug()}))
	engine.Use(tracing.GinMiddleware())
	engine.Use(metrics.GinMiddleware(s.metrics))
	engine.Use(ErrorHandlingMiddleware())

	engine.GET("/health", s.health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.registerRoutes(engine)
	return engine
}

func (s *Server) registerRoutes(engine *gin.Engine) {
	api := engine.Group("/api")

	products := api.Group("/products")
	products.POST("/register", s.registerProduct)
	products.GET("", s.listProducts)
	products.GET("/:id", s.getProduct)
	products.GET("/:id/journey", s.getJourney)
	products.GET("/:id/provenance", s.getProvenance)
	products.POST("/:id/status", s.updateStatus)
	products.PUT("/:id/metadata", s.updateMetadata)

	transfers := api.Group("/transfers")
	transfers.POST("", s.transferOwnership)
	transfers.POST("/batch", s.batchTransferOwnership)
	transfers.GET("/:productId", s.getTransferHistory)

	verification := api.Group("/verification")
	verification.POST("/authenticity", s.verifyAuthenticity)
	verification.POST("/quality", s.performQualityCheck)
	verification.POST("/compliance", s.checkCompliance)
	verification.GET("/:productId", s.getVerificationHistory)

	roles := api.Group("/roles")
	roles.GET("/check/:address", s.checkRole)
	roles.GET("/my-role", s.myRole)
	roles.POST("/grant", s.grantRole)
	roles.POST("/grant-dev", s.grantRoleDev)
	roles.POST("/batch-grant-dev", s.batchGrantRoleDev)

	qrGroup := api.Group("/qr")
	qrGroup.GET("/:productId", s.qrImage)
	qrGroup.GET("/:productId/data", s.qrData)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": s.cfg.AppName + " is running",
	})
}

// parseProductID reads and validates a numeric product id path parameter.
func parseProductID(c *gin.Context, param string) (uint64, error) {
	raw := c.Param(param)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || !validate.IsValidProductID(id) {
		return 0, validationError("invalid product id %q", raw)
	}
	return uint64(id), nil
}

// Run starts the HTTP server on the fx lifecycle with a graceful shutdown
// window.
func Run(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening",
				zap.String("addr", srv.Addr),
				zap.String("service", cfg.AppName),
			)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
