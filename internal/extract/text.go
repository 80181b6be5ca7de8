package extract

import (
	"strings"
	"unicode/utf8"

	"resumescan/internal/types"
)

// extractTXT treats the upload as UTF-8, dropping any invalid sequences.
func extractTXT(data []byte) (*types.ExtractedDocument, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return &types.ExtractedDocument{
		Text:      text,
		PageCount: 1,
	}, nil
}
