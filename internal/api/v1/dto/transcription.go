package dto

import (
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/pipeline"
)

// CreateTranscriptionRequest is the multipart form accompanying an upload.
// The audio file itself arrives in the "file" part.
type CreateTranscriptionRequest struct {
	Name     string `form:"name"`
	Language string `form:"language"`

	RemoveSilence        bool    `form:"remove_silence"`
	SilenceThresholdDBFS float64 `form:"silence_threshold_dbfs"`
	MinSilenceLenMs      int     `form:"min_silence_len_ms" binding:"omitempty,min=1"`
	KeepSilenceMs        int     `form:"keep_silence_ms" binding:"omitempty,min=0"`

	Compress          bool `form:"compress"`
	TargetBitrateKbps int  `form:"target_bitrate_kbps" binding:"omitempty,min=6,max=510"`
	Channels          int  `form:"channels" binding:"omitempty,oneof=1 2"`

	ImproveTranscript bool `form:"improve_transcript"`
}

// Options converts the request into pipeline preprocessing options.
func (r *CreateTranscriptionRequest) Options() model.PreprocessingOptions {
	return model.PreprocessingOptions{
		RemoveSilence:        r.RemoveSilence,
		SilenceThresholdDBFS: r.SilenceThresholdDBFS,
		MinSilenceLenMs:      r.MinSilenceLenMs,
		KeepSilenceMs:        r.KeepSilenceMs,
		Compress:             r.Compress,
		TargetBitrateKbps:    r.TargetBitrateKbps,
		Channels:             r.Channels,
	}.Normalize()
}

// TranscriptionResponse is returned for a completed pipeline run.
type TranscriptionResponse struct {
	Record   model.TranscriptionRecord `json:"record"`
	Stats    model.PreprocessingStats  `json:"stats"`
	Warnings []string                  `json:"warnings,omitempty"`
}

// FromResult builds the response for a completed run.
func FromResult(result pipeline.Result) TranscriptionResponse {
	return TranscriptionResponse{
		Record:   result.Record,
		Stats:    result.Stats,
		Warnings: result.Warnings,
	}
}

// ListTranscriptionsResponse wraps a record collection.
type ListTranscriptionsResponse struct {
	Transcriptions []model.TranscriptionRecord `json:"transcriptions"`
	Count          int                         `json:"count"`
}

// DeleteResponse reports whether a record existed.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// ClearAllResponse reports how many records were removed.
type ClearAllResponse struct {
	Cleared int `json:"cleared"`
}

// StorageStatusResponse reports the active storage backend.
type StorageStatusResponse struct {
	Backend    string `json:"backend"`
	Persistent bool   `json:"persistent"`
}
