// Package docpipe extracts flat text from uploaded document bytes.
//
// Supported formats:
//   - .txt   — plain text (UTF-8, verbatim)
//   - .md    — Markdown (heading markers stripped)
//   - .docx  — Microsoft Word (archive/zip → word/document.xml)
//   - .odt   — OpenDocument Text (archive/zip → content.xml)
//   - .pdf   — PDF text extraction via pdfcpu, page by page
//   - .csv   — delimited rows; text columns only
//   - .xlsx  — Excel; first sheet treated as a delimited grid
//
// Usage:
//
//	pipe := docpipe.New(docpipe.Config{})
//	format, err := pipe.Detect("report.docx", "")
//	text, err := pipe.Extract(ctx, docpipe.RawDocument{Format: format, Data: data})
//
// Extraction never fails silently: a document with no extractable text
// yields an explicit empty string, and callers must treat empty output as
// an error condition before going further down the pipeline.
package docpipe

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Pipeline is the document extraction engine.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

// New creates a Pipeline with the given configuration.
func New(cfg Config) *Pipeline {
	cfg.defaults()
	return &Pipeline{
		cfg:    cfg,
		logger: cfg.Logger,
	}
}

// Detect returns the document format based on file extension, falling back
// to the declared MIME type when the extension is unknown.
func (p *Pipeline) Detect(filename, mime string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt", ".text":
		return FormatTXT, nil
	case ".md", ".markdown":
		return FormatMD, nil
	case ".docx":
		return FormatDocx, nil
	case ".odt":
		return FormatODT, nil
	case ".pdf":
		return FormatPDF, nil
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}

	switch mime {
	case "text/plain":
		return FormatTXT, nil
	case "text/markdown":
		return FormatMD, nil
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return FormatDocx, nil
	case "application/vnd.oasis.opendocument.text":
		return FormatODT, nil
	case "application/pdf":
		return FormatPDF, nil
	case "text/csv":
		return FormatCSV, nil
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return FormatXLSX, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// Extract converts document bytes into a single flat string in document
// order (pages, paragraphs, or tabular cells), space-joined. The input is
// never mutated. An empty result is not an error here; the caller decides.
func (p *Pipeline) Extract(ctx context.Context, doc RawDocument) (string, error) {
	if int64(len(doc.Data)) > p.cfg.MaxFileSize {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, len(doc.Data), p.cfg.MaxFileSize)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.logger.Debug("extracting document", "name", doc.Name, "format", doc.Format, "bytes", len(doc.Data))

	switch doc.Format {
	case FormatTXT:
		return extractText(doc.Data)
	case FormatMD:
		return extractMarkdown(doc.Data)
	case FormatDocx:
		return extractDocx(doc.Data)
	case FormatODT:
		return extractODT(doc.Data)
	case FormatPDF:
		return extractPDF(doc.Data)
	case FormatCSV:
		return extractCSV(doc.Data)
	case FormatXLSX:
		return extractXLSX(doc.Data)
	default:
		return "", fmt.Errorf("%w: no extractor for %q", ErrUnsupportedFormat, doc.Format)
	}
}

// SupportedFormats returns all supported format extensions.
func SupportedFormats() []string {
	return []string{"txt", "md", "docx", "odt", "pdf", "csv", "xlsx"}
}
