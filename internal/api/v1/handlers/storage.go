package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/middleware"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/v1/dto"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/repository"
)

// StorageHandler exposes the gateway's backend state and the explicit
// re-probe operation. Fallback is never re-evaluated implicitly.
type StorageHandler struct {
	gateway *repository.Gateway
}

func NewStorageHandler(gateway *repository.Gateway) *StorageHandler {
	return &StorageHandler{gateway: gateway}
}

// Status handles GET /api/v1/storage.
func (h *StorageHandler) Status(c *gin.Context) {
	backend := h.gateway.Backend()
	c.JSON(http.StatusOK, dto.StorageStatusResponse{
		Backend:    string(backend),
		Persistent: backend == repository.BackendRemote,
	})
}

// Reprobe handles POST /api/v1/storage/reprobe.
func (h *StorageHandler) Reprobe(c *gin.Context) {
	backend, err := h.gateway.Reprobe(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StorageStatusResponse{
		Backend:    string(backend),
		Persistent: backend == repository.BackendRemote,
	})
}
