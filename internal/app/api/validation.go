package api

import (
	"strings"

	apperrors "github.com/Teapot-Agency/whisper-trascription-app/internal/app/errors"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// DefaultMaxUploadBytes matches the Whisper API's 25 MB request limit.
const DefaultMaxUploadBytes int64 = 25 * 1024 * 1024

// allowedExtensions is the upload allow-list, lowercase without the dot.
var allowedExtensions = map[string]bool{
	"mp3":  true,
	"wav":  true,
	"m4a":  true,
	"ogg":  true,
	"flac": true,
	"webm": true,
}

// ValidateBuffer checks the buffer locally before any network call.
func ValidateBuffer(buf model.AudioBuffer, maxBytes int64) error {
	if len(buf.Data) == 0 {
		return apperrors.New(apperrors.KindValidation, "audio file is empty")
	}

	ext := strings.ToLower(buf.Ext)
	if !allowedExtensions[ext] {
		return apperrors.Newf(apperrors.KindValidation,
			"unsupported audio format %q, expected one of %s", buf.Ext, strings.Join(AllowedExtensions(), ", "))
	}

	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if buf.Size() > maxBytes {
		return apperrors.Newf(apperrors.KindValidation,
			"audio file is %d bytes, maximum is %d", buf.Size(), maxBytes)
	}
	return nil
}

// AllowedExtensions returns the accepted upload extensions, sorted.
func AllowedExtensions() []string {
	return []string{"flac", "m4a", "mp3", "ogg", "wav", "webm"}
}
