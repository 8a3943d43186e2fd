package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/errors"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/middleware"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/api/v1/dto"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/pipeline"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/repository"
)

// TranscriptionHandler drives the pipeline from HTTP uploads and serves the
// stored records.
type TranscriptionHandler struct {
	orchestrator *pipeline.Orchestrator
	store        repository.TranscriptionStore
	maxBytes     int64
	timeout      time.Duration
}

func NewTranscriptionHandler(orchestrator *pipeline.Orchestrator, store repository.TranscriptionStore, maxBytes int64, timeout time.Duration) *TranscriptionHandler {
	return &TranscriptionHandler{
		orchestrator: orchestrator,
		store:        store,
		maxBytes:     maxBytes,
		timeout:      timeout,
	}
}

// Create handles POST /api/v1/transcriptions: a multipart upload with the
// audio in the "file" part and options as form fields.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateTranscriptionRequest
	if err := middleware.ValidateForm(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("audio file is required in the 'file' part"))
		return
	}
	if h.maxBytes > 0 && fileHeader.Size > h.maxBytes {
		middleware.HandleError(c, errors.NewValidationError("audio file is too large", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("could not read the uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("could not read the uploaded file"))
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.orchestrator.Run(ctx,
		model.NewAudioBuffer(data, fileHeader.Filename),
		req.Options(),
		pipeline.Metadata{
			Name:              req.Name,
			Filename:          fileHeader.Filename,
			LanguageHint:      req.Language,
			ImproveTranscript: req.ImproveTranscript,
		},
	)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromResult(result))
}

// List handles GET /api/v1/transcriptions, newest first.
func (h *TranscriptionHandler) List(c *gin.Context) {
	records, err := h.store.GetAll(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTranscriptionsResponse{Transcriptions: records, Count: len(records)})
}

// Search handles GET /api/v1/transcriptions/search?q=...
func (h *TranscriptionHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		middleware.HandleError(c, errors.NewBadRequestError("query parameter 'q' is required"))
		return
	}

	records, err := h.store.Search(c.Request.Context(), query)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTranscriptionsResponse{Transcriptions: records, Count: len(records)})
}

// Delete handles DELETE /api/v1/transcriptions/:id. Unknown ids are a 404.
func (h *TranscriptionHandler) Delete(c *gin.Context) {
	deleted, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	if !deleted {
		middleware.HandleError(c, errors.NewNotFoundError("transcription"))
		return
	}
	c.JSON(http.StatusOK, dto.DeleteResponse{Deleted: true})
}

// ClearAll handles DELETE /api/v1/transcriptions.
func (h *TranscriptionHandler) ClearAll(c *gin.Context) {
	count, err := h.store.ClearAll(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ClearAllResponse{Cleared: count})
}
