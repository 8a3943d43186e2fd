package whisper

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/api"
	apperrors "github.com/Teapot-Agency/whisper-trascription-app/internal/app/errors"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

const defaultRetryBackoff = 2 * time.Second

// RemoteTranscriber sends audio buffers to the OpenAI Whisper API. Transient
// failures are retried exactly once after a short backoff; auth and
// validation failures surface immediately.
type RemoteTranscriber struct {
	client   *openai.Client
	maxBytes int64
	backoff  time.Duration
	logger   *zap.Logger
}

func NewRemoteTranscriber(client *openai.Client, maxBytes int64, logger *zap.Logger) *RemoteTranscriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteTranscriber{
		client:   client,
		maxBytes: maxBytes,
		backoff:  defaultRetryBackoff,
		logger:   logger,
	}
}

// Transcribe implements api.Transcriber.
func (t *RemoteTranscriber) Transcribe(ctx context.Context, buf model.AudioBuffer, languageHint string) (api.TranscriptionResult, error) {
	if err := api.ValidateBuffer(buf, t.maxBytes); err != nil {
		return api.TranscriptionResult{}, err
	}

	request := openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: "audio." + buf.Ext,
		Reader:   bytes.NewReader(buf.Data),
		Language: languageHint,
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	response, err := t.client.CreateTranscription(ctx, request)
	if err != nil {
		classified := classifyAPIError(err)
		if !apperrors.Retryable(classified) {
			return api.TranscriptionResult{}, classified
		}

		t.logger.Warn("transcription request failed, retrying once", zap.Error(classified))
		select {
		case <-time.After(t.backoff):
		case <-ctx.Done():
			return api.TranscriptionResult{}, apperrors.Wrap(ctx.Err(), apperrors.KindTransient, "transcription cancelled")
		}

		request.Reader = bytes.NewReader(buf.Data)
		response, err = t.client.CreateTranscription(ctx, request)
		if err != nil {
			// A non-transient second failure keeps its own kind; only
			// transient ones carry the after-retry context.
			retryErr := classifyAPIError(err)
			if apperrors.Retryable(retryErr) {
				return api.TranscriptionResult{}, apperrors.Wrap(retryErr, apperrors.KindTransient, "transcription failed after retry")
			}
			return api.TranscriptionResult{}, retryErr
		}
	}

	language := response.Language
	if language == "" {
		language = languageHint
	}
	return api.TranscriptionResult{Text: response.Text, Language: language}, nil
}

// WithRetryBackoff overrides the retry delay. Used by tests.
func (t *RemoteTranscriber) WithRetryBackoff(d time.Duration) *RemoteTranscriber {
	t.backoff = d
	return t
}

// classifyAPIError maps OpenAI API failures onto the pipeline taxonomy. The
// auth message deliberately never includes the configured key.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if stderrors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return apperrors.New(apperrors.KindAuth, "OpenAI API key is invalid or missing")
		case http.StatusRequestEntityTooLarge:
			return apperrors.New(apperrors.KindValidation, "audio file is too large for the transcription service")
		case http.StatusBadRequest:
			return apperrors.Newf(apperrors.KindValidation, "transcription service rejected the file: %s", apiErr.Message)
		case http.StatusTooManyRequests:
			return apperrors.Wrap(err, apperrors.KindTransient, "transcription service rate limit exceeded")
		default:
			if apiErr.HTTPStatusCode >= 500 {
				return apperrors.Wrap(err, apperrors.KindTransient, "transcription service unavailable")
			}
			return apperrors.Wrap(err, apperrors.KindTransient, "transcription request failed")
		}
	}

	if stderrors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.KindTransient, "transcription request timed out")
	}
	return apperrors.Wrap(err, apperrors.KindTransient, "transcription request failed")
}
