package api

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Teapot-Agency/whisper-trascription-app/internal/app/errors"
	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

func TestValidateBuffer(t *testing.T) {
	tests := []struct {
		name     string
		buf      model.AudioBuffer
		maxBytes int64
		wantErr  string
	}{
		{
			name: "valid_mp3",
			buf:  model.AudioBuffer{Data: []byte("abc"), Ext: "mp3"},
		},
		{
			name: "uppercase_extension_accepted",
			buf:  model.AudioBuffer{Data: []byte("abc"), Ext: "WAV"},
		},
		{
			name:    "empty_buffer",
			buf:     model.AudioBuffer{Ext: "mp3"},
			wantErr: "audio file is empty",
		},
		{
			name:    "unsupported_extension",
			buf:     model.AudioBuffer{Data: []byte("abc"), Ext: "aiff"},
			wantErr: `unsupported audio format "aiff"`,
		},
		{
			name:    "missing_extension",
			buf:     model.AudioBuffer{Data: []byte("abc")},
			wantErr: "unsupported audio format",
		},
		{
			name:     "over_limit",
			buf:      model.AudioBuffer{Data: bytes.Repeat([]byte("a"), 11), Ext: "ogg"},
			maxBytes: 10,
			wantErr:  "audio file is 11 bytes, maximum is 10",
		},
		{
			name:     "exactly_at_limit",
			buf:      model.AudioBuffer{Data: bytes.Repeat([]byte("a"), 10), Ext: "ogg"},
			maxBytes: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBuffer(tt.buf, tt.maxBytes)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateBufferDefaultLimit(t *testing.T) {
	// maxBytes <= 0 falls back to the Whisper API limit.
	buf := model.AudioBuffer{Data: []byte("abc"), Ext: "flac"}
	assert.NoError(t, ValidateBuffer(buf, 0))
	assert.NoError(t, ValidateBuffer(buf, -1))
}

func TestAllowedExtensions(t *testing.T) {
	exts := AllowedExtensions()
	assert.Equal(t, []string{"flac", "m4a", "mp3", "ogg", "wav", "webm"}, exts)
	for _, ext := range exts {
		assert.True(t, allowedExtensions[ext])
	}
}
