package docpipe

import (
	"errors"
	"fmt"
)

var (
	// ErrDecoding means the raw bytes cannot be interpreted under the
	// declared format's expected encoding (e.g. invalid UTF-8 in a .txt).
	ErrDecoding = errors.New("cannot decode file content")

	// ErrUnsupportedFormat means the declared or detected format has no
	// matching extractor, or the document structure cannot be parsed.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileTooLarge means the upload exceeds Config.MaxFileSize.
	ErrFileTooLarge = errors.New("file too large")
)

// ParseError is a structural parse failure in a tabular file. It wraps
// the underlying cause so the boundary can report it to the caller.
type ParseError struct {
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
