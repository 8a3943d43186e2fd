package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/middleware"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/v1/handlers"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/v1/routes"
)

// New assembles the gin engine with middleware, v1 routes, health and
// metrics endpoints.
func New(logger *zap.Logger, transcriptions *handlers.TranscriptionHandler, storage *handlers.StorageHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.ErrorHandler(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.Register(r, transcriptions, storage)
	return r
}
