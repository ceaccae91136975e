package train

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSV reads labeled examples from a CSV file. When the first row is a
// header it locates the Message and Label columns by name; otherwise the
// first two columns are taken as message and label. A row is positive when
// its label equals positiveLabel, compared case-insensitively.
func LoadCSV(path string, positiveLabel string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return readCSV(f, positiveLabel)
}

func readCSV(r io.Reader, positiveLabel string) ([]Example, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset is empty")
	}

	textCol, labelCol := 0, 1
	start := 0
	if cols, ok := headerColumns(rows[0]); ok {
		textCol, labelCol = cols[0], cols[1]
		start = 1
	}

	var examples []Example
	for i, row := range rows[start:] {
		if len(row) <= textCol || len(row) <= labelCol {
			return nil, fmt.Errorf("dataset row %d has %d columns", start+i+1, len(row))
		}
		label := 0
		if strings.EqualFold(strings.TrimSpace(row[labelCol]), positiveLabel) {
			label = 1
		}
		examples = append(examples, Example{
			Text:  row[textCol],
			Label: label,
		})
	}
	return examples, nil
}

// headerColumns detects a Message/Label header row and returns the column
// indices of the text and label fields.
func headerColumns(row []string) ([2]int, bool) {
	textCol, labelCol := -1, -1
	for i, field := range row {
		switch strings.ToLower(strings.TrimSpace(field)) {
		case "message", "text", "body":
			if textCol < 0 {
				textCol = i
			}
		case "label", "class":
			if labelCol < 0 {
				labelCol = i
			}
		}
	}
	if textCol >= 0 && labelCol >= 0 {
		return [2]int{textCol, labelCol}, true
	}
	return [2]int{}, false
}
