package extract

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// extractDOC salvages readable text from a legacy Word binary. There is no
// pure-Go OLE2 Word parser worth depending on, and shelling out to antiword
// is off the table inside a request path, so this scans the compound-file
// stream for printable ASCII and UTF-16LE runs. Word stores body text in
// long contiguous runs, which makes the salvage surprisingly usable for
// signal extraction even though layout is lost.
func extractDOC(data []byte) (*types.ExtractedDocument, error) {
	runs := salvageASCII(data)
	if utf := salvageUTF16(data); len(utf) > len(runs) {
		runs = utf
	}

	text := strings.Join(runs, "\n")
	if visibleChars(text) < minSalvageChars {
		return nil, errors.NewExtractionError(errors.ErrCodeCorruptDocument,
			"Legacy .doc file yielded no readable text; convert it to .docx or PDF", nil)
	}

	return &types.ExtractedDocument{
		Text:      text,
		PageCount: 1,
	}, nil
}

// salvageASCII collects printable single-byte runs of a meaningful length.
func salvageASCII(data []byte) []string {
	var runs []string
	var current []byte
	flush := func() {
		if len(current) >= 4 {
			runs = append(runs, strings.TrimSpace(string(current)))
		}
		current = current[:0]
	}
	for _, b := range data {
		if b == '\r' || b == 0x07 {
			// Word uses CR for paragraph marks and 0x07 for cell ends.
			current = append(current, '\n')
			continue
		}
		if b == '\t' || (b >= 0x20 && b < 0x7F) {
			current = append(current, b)
			continue
		}
		flush()
	}
	flush()
	return nonEmpty(runs)
}

// salvageUTF16 handles documents saved with Unicode body text, where each
// character occupies two bytes little-endian.
func salvageUTF16(data []byte) []string {
	var runs []string
	var current []uint16
	flush := func() {
		if len(current) >= 4 {
			runs = append(runs, strings.TrimSpace(string(utf16.Decode(current))))
		}
		current = current[:0]
	}
	for i := 0; i+1 < len(data); i += 2 {
		u := uint16(data[i]) | uint16(data[i+1])<<8
		switch {
		case u == '\r' || u == 0x07:
			current = append(current, '\n')
		case u == '\t' || (u >= 0x20 && u < 0xD800):
			current = append(current, u)
		default:
			flush()
		}
	}
	flush()
	return nonEmpty(runs)
}

func visibleChars(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			n++
		}
	}
	return n
}

func nonEmpty(in []string) []string {
	out := in[:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
