package docpipe

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// extractText decodes plain text verbatim. Invalid UTF-8 is a decoding
// error rather than silently mangled replacement runes.
func extractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrDecoding)
	}
	return string(data), nil
}

// extractMarkdown flattens a Markdown file: heading markers are stripped
// and paragraph lines are kept in document order.
func extractMarkdown(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: not valid UTF-8", ErrDecoding)
	}

	var parts []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// ATX headings: keep the text, drop the markers.
		if strings.HasPrefix(trimmed, "#") {
			heading := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			heading = strings.TrimSpace(strings.TrimRight(heading, "#"))
			if heading != "" {
				parts = append(parts, heading)
			}
			continue
		}

		parts = append(parts, trimmed)
	}

	return strings.Join(parts, " "), nil
}
