package export

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"

	"github.com/Teapot-Agency/whisper-trascription-app/internal/app/model"
)

// ToText renders records as line-delimited blocks, one per transcription,
// matching the .txt download the web UI offers.
func ToText(records []model.TranscriptionRecord) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Name: %s\n", r.Name)
		fmt.Fprintf(&b, "Date: %s\n", r.Date)
		fmt.Fprintf(&b, "Language: %s\n", r.Language)
		fmt.Fprintf(&b, "Text: %s\n", r.Text)
	}
	return b.String()
}

// ToExcel writes records to a spreadsheet at outputFilePath.
func ToExcel(records []model.TranscriptionRecord, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Name"
	headerRow.AddCell().Value = "Filename"
	headerRow.AddCell().Value = "Date"
	headerRow.AddCell().Value = "Language"
	headerRow.AddCell().Value = "Text"

	for _, r := range records {
		row := sheet.AddRow()
		row.AddCell().Value = r.ID
		row.AddCell().Value = r.Name
		row.AddCell().Value = r.Filename
		row.AddCell().Value = r.Date
		row.AddCell().Value = r.Language
		row.AddCell().Value = r.Text
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
