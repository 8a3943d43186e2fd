package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/v1/handlers"
)

// Register wires the v1 endpoints into the engine.
func Register(r *gin.Engine, transcriptions *handlers.TranscriptionHandler, storage *handlers.StorageHandler) {
	v1 := r.Group("/api/v1")
	{
		v1.POST("/transcriptions", transcriptions.Create)
		v1.GET("/transcriptions", transcriptions.List)
		v1.GET("/transcriptions/search", transcriptions.Search)
		v1.DELETE("/transcriptions/:id", transcriptions.Delete)
		v1.DELETE("/transcriptions", transcriptions.ClearAll)

		v1.GET("/storage", storage.Status)
		v1.POST("/storage/reprobe", storage.Reprobe)
	}
}
