package docpipe

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// extractODT parses .odt bytes by reading content.xml from the ZIP archive.
// Headings and paragraphs are concatenated in document order.
func extractODT(data []byte) (string, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open zip: %v", ErrUnsupportedFormat, err)
	}

	var contentFile *zip.File
	for _, f := range r.File {
		if f.Name == "content.xml" {
			contentFile = f
			break
		}
	}
	if contentFile == nil {
		return "", fmt.Errorf("%w: content.xml not found in archive", ErrUnsupportedFormat)
	}

	rc, err := contentFile.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open content.xml: %v", ErrUnsupportedFormat, err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraphs []string
	var currentText strings.Builder
	var inText bool
	depth := 0

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			depth++
			if depth > maxXMLDepth {
				return "", fmt.Errorf("%w: XML nesting depth exceeds %d", ErrUnsupportedFormat, maxXMLDepth)
			}
			// <text:p> paragraphs and <text:h> headings both carry body text.
			if t.Name.Local == "p" || t.Name.Local == "h" {
				inText = true
				currentText.Reset()
			}

		case xml.CharData:
			if inText {
				currentText.Write(t)
			}

		case xml.EndElement:
			depth--
			if (t.Name.Local == "p" || t.Name.Local == "h") && inText {
				inText = false
				if text := strings.TrimSpace(currentText.String()); text != "" {
					paragraphs = append(paragraphs, text)
				}
			}
		}
	}

	return strings.Join(paragraphs, " "), nil
}
