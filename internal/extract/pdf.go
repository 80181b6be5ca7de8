package extract

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// extractPDF reads every page's text spans, reconstructing lines from span
// coordinates and tallying font usage along the way. The pdf library can
// panic on malformed cross-reference tables, so the whole pass runs under
// a recover that maps to CORRUPT_DOCUMENT.
func extractPDF(data []byte) (out *types.ExtractedDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.NewExtractionError(errors.ErrCodeCorruptDocument,
				"Malformed PDF structure", fmt.Errorf("pdf reader panic: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.NewExtractionError(errors.ErrCodeCorruptDocument,
			"Unreadable PDF document", err)
	}

	fontUsage := make(map[string]int)
	var builder strings.Builder
	pages := reader.NumPage()

	for pageNo := 1; pageNo <= pages; pageNo++ {
		page := reader.Page(pageNo)
		if page.V.IsNull() {
			continue
		}
		for _, line := range pageLines(page.Content(), fontUsage) {
			builder.WriteString(line)
			builder.WriteByte('\n')
		}
		builder.WriteByte('\n')
	}

	return &types.ExtractedDocument{
		Text:      builder.String(),
		PageCount: pages,
		FontUsage: fontUsage,
	}, nil
}

// pageLines groups a page's text spans into visual lines by their vertical
// position, reading top to bottom, left to right.
func pageLines(content pdf.Content, fontUsage map[string]int) []string {
	rows := make(map[int][]pdf.Text)
	var keys []int
	for _, span := range content.Text {
		if strings.TrimSpace(span.S) == "" {
			continue
		}
		if span.Font != "" {
			fontUsage[span.Font]++
		}
		y := int(math.Round(span.Y))
		if _, seen := rows[y]; !seen {
			keys = append(keys, y)
		}
		rows[y] = append(rows[y], span)
	}

	// PDF coordinates grow upward, so higher Y comes first.
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))

	lines := make([]string, 0, len(keys))
	for _, y := range keys {
		spans := rows[y]
		sort.Slice(spans, func(i, j int) bool { return spans[i].X < spans[j].X })

		var line strings.Builder
		var lastEnd float64
		for i, span := range spans {
			// A visible horizontal gap between spans becomes a space.
			if i > 0 && span.X-lastEnd > 1 {
				line.WriteByte(' ')
			}
			line.WriteString(span.S)
			lastEnd = span.X + span.W
		}
		lines = append(lines, line.String())
	}
	return lines
}
