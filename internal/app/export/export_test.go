package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

func sampleRecords() []model.TranscriptionRecord {
	return []model.TranscriptionRecord{
		{
			ID:       "id-1",
			Name:     "Standup",
			Filename: "standup.mp3",
			Date:     "2026-08-30 10:00:00",
			Text:     "we discussed the roadmap",
			Language: "english",
		},
		{
			ID:       "id-2",
			Name:     "Interview",
			Filename: "interview.wav",
			Date:     "2026-08-29 15:30:00",
			Text:     "candidate talked about Go",
			Language: "english",
		},
	}
}

func TestToText(t *testing.T) {
	out := ToText(sampleRecords())

	want := "Name: Standup\n" +
		"Date: 2026-08-30 10:00:00\n" +
		"Language: english\n" +
		"Text: we discussed the roadmap\n" +
		"\n" +
		"Name: Interview\n" +
		"Date: 2026-08-29 15:30:00\n" +
		"Language: english\n" +
		"Text: candidate talked about Go\n"
	assert.Equal(t, want, out)
}

func TestToTextEmpty(t *testing.T) {
	assert.Empty(t, ToText(nil))
}

func TestToExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.xlsx")
	require.NoError(t, ToExcel(sampleRecords(), path))

	file, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Transcriptions", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "ID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Text", sheet.Rows[0].Cells[5].Value)
	assert.Equal(t, "id-1", sheet.Rows[1].Cells[0].Value)
	assert.Equal(t, "we discussed the roadmap", sheet.Rows[1].Cells[5].Value)
	assert.Equal(t, "Interview", sheet.Rows[2].Cells[1].Value)
}

func TestToExcelBadPath(t *testing.T) {
	err := ToExcel(sampleRecords(), filepath.Join(t.TempDir(), "missing", "export.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save xlsx")
}
