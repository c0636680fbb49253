package docpipe

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractCSV parses delimited rows with a header and concatenates every
// cell of every textual (non-numeric) column in row-major order. A
// structural parse failure yields a *ParseError wrapping the cause.
func extractCSV(data []byte) (string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are tolerated; column typing handles them
	rows, err := r.ReadAll()
	if err != nil {
		return "", &ParseError{Format: FormatCSV, Err: err}
	}
	return gridText(rows), nil
}

// extractXLSX opens Excel bytes and runs the first sheet through the same
// textual-column aggregation as CSV.
func extractXLSX(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", &ParseError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", &ParseError{Format: FormatXLSX, Err: err}
	}
	return gridText(rows), nil
}

// gridText selects the columns whose values are textual across the whole
// column (a column where every non-empty cell parses as a number is
// numeric and contributes nothing), then concatenates cell values of the
// kept columns row-major, space-joined. The first row is the header and is
// not part of the output.
func gridText(rows [][]string) string {
	if len(rows) < 2 {
		return ""
	}
	header, body := rows[0], rows[1:]

	textual := make([]bool, len(header))
	for col := range header {
		hasValue := false
		isText := false
		for _, row := range body {
			if col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			hasValue = true
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				isText = true
				break
			}
		}
		textual[col] = hasValue && isText
	}

	var parts []string
	for _, row := range body {
		for col := range header {
			if !textual[col] || col >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[col])
			if cell != "" {
				parts = append(parts, cell)
			}
		}
	}
	return strings.Join(parts, " ")
}
