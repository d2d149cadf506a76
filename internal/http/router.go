package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"omni_notifications/internal/config"
	"omni_notifications/internal/http/controller"
	"omni_notifications/internal/http/middleware"
	"omni_notifications/internal/metrics"
)

func NewRouter(cfg *config.Config, handler *controller.Handler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.ZapLogger(logger),
		middleware.ZapRecovery(logger),
		otelgin.Middleware(cfg.OTELServiceName),
	)

	router.GET("/health", handler.Health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/notifications")
	{
		api.GET("", handler.ListNotifications)
		api.GET("/:id", handler.GetNotification)
		api.PUT("/:id/read", handler.MarkRead)
		api.PUT("/read-all", handler.MarkAllRead)
		api.DELETE("/:id", handler.DeleteNotification)
		api.POST("/test/create", handler.CreateTestNotification)
		api.GET("/ws/:account_id", handler.WebSocket)
	}

	return router
}
