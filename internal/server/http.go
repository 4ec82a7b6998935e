package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jsonshare/jsonshare-backend/internal/conf"
	"github.com/jsonshare/jsonshare-backend/internal/data"
	"github.com/jsonshare/jsonshare-backend/internal/pkg/logger"
	"github.com/jsonshare/jsonshare-backend/internal/server/middleware"
	"github.com/jsonshare/jsonshare-backend/internal/share/service"
	"go.uber.org/zap"
)

type HTTPServer struct {
	server *http.Server
	logger *logger.Logger
}

func NewHTTPServer(
	config *conf.Config,
	log *logger.Logger,
	d *data.Data,
	shareService *service.ShareService,
	savedService *service.SavedService,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(logger.GinRecovery(log))
	router.Use(logger.GinLogger(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.UserIDHeader, "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		httpStatus := http.StatusOK

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := d.DB.HealthCheck(ctx); err != nil {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API routes
	api := router.Group("/api")

	if config.RateLimit.Enabled {
		api.Use(middleware.RateLimiter(d.RedisClient, middleware.RateLimiterConfig{
			MaxRequests:   config.RateLimit.Requests,
			WindowSeconds: config.RateLimit.Window,
			Strategy:      "user",
		}, log))
	}

	requireUser := middleware.RequireUserID()

	shares := api.Group("/shares")
	{
		shares.POST("", requireUser, shareService.CreateShare)
		shares.GET("", requireUser, shareService.ListShares)
		// Public resolution by share ID, no identity header needed
		shares.GET("/:shareId", shareService.GetShare)
		shares.DELETE("/:shareId", requireUser, shareService.DeleteShare)
	}

	saved := api.Group("/saved", requireUser)
	{
		saved.POST("", savedService.SaveFile)
		saved.GET("", savedService.ListSavedFiles)
		saved.GET("/:id", savedService.GetSavedFile)
		saved.PUT("/:id", savedService.UpdateSavedFile)
		saved.DELETE("/:id", savedService.RemoveSavedFile)
	}

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)

	return &HTTPServer{
		server: &http.Server{
			Addr:    addr,
			Handler: router,
		},
		logger: log,
	}
}

func (s *HTTPServer) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}

func (s *HTTPServer) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP server")
	return s.server.Shutdown(ctx)
}
