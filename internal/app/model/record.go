package model

import "time"

// TranscriptionRecord is one completed transcription. ID is assigned once at
// creation and never changes; Text is written exactly once, there is no edit
// operation.
type TranscriptionRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Filename  string    `json:"filename"`
	Date      string    `json:"date"`
	Text      string    `json:"text"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// DateLayout is the human-readable creation timestamp stored in Date.
const DateLayout = "2006-01-02 15:04:05"
