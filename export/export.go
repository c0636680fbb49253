// Package export serializes generation results into downloadable payloads
// referenced by data URIs, so no artifact ever touches server-side storage.
package export

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/hazyhaar/nuage/cloud"
	"github.com/hazyhaar/nuage/report"
)

// Payload is one self-contained downloadable artifact. Produced once per
// export request and not retained beyond the response.
type Payload struct {
	MIME     string `json:"mime"`
	Filename string `json:"filename"`
	Bytes    []byte `json:"-"`
}

// DataURI returns the payload as a data: link with base64-encoded bytes.
func (p Payload) DataURI() string {
	return "data:" + p.MIME + ";base64," + base64.StdEncoding.EncodeToString(p.Bytes)
}

// Image wraps rendered PNG bytes as a downloadable payload.
func Image(pngData []byte) Payload {
	return Payload{
		MIME:     "image/png",
		Filename: "wordcloud.png",
		Bytes:    pngData,
	}
}

// Table serializes a frequency report as CSV with a Word,Frequency header,
// rows in report order. Words containing commas or quotes are quoted per
// RFC 4180, so DecodeTable reproduces the report exactly.
func Table(r report.Report) (Payload, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Word", "Frequency"}); err != nil {
		return Payload{}, fmt.Errorf("write header: %w", err)
	}
	for _, row := range r.Words {
		rec := []string{row.Word, strconv.FormatFloat(row.Weight, 'g', -1, 64)}
		if err := w.Write(rec); err != nil {
			return Payload{}, fmt.Errorf("write row %q: %w", row.Word, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Payload{}, fmt.Errorf("flush: %w", err)
	}

	return Payload{
		MIME:     "text/csv",
		Filename: "word_frequencies.csv",
		Bytes:    buf.Bytes(),
	}, nil
}

// DecodeTable parses CSV payload bytes back into a report. It is the
// inverse of Table: rows come back in file order with exact weights.
func DecodeTable(data []byte) (report.Report, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return report.Report{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 || rows[0][0] != "Word" {
		return report.Report{}, fmt.Errorf("missing Word,Frequency header")
	}

	words := make([]cloud.WeightedWord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != 2 {
			return report.Report{}, fmt.Errorf("row %d: expected 2 fields, got %d", i+1, len(row))
		}
		weight, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return report.Report{}, fmt.Errorf("row %d: frequency: %w", i+1, err)
		}
		words = append(words, cloud.WeightedWord{Word: row[0], Weight: weight})
	}
	return report.Report{Words: words}, nil
}
