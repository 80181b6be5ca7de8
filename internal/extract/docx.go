package extract

import (
	"bytes"
	"fmt"
	"strings"

	"baliance.com/gooxml/document"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// extractDOCX walks the document's paragraphs and runs, collecting run-level
// font declarations so the format checker can judge consistency. Heading
// paragraph styles are kept on their own lines, which preserves section
// headers for the segmenter.
func extractDOCX(data []byte) (out *types.ExtractedDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = errors.NewExtractionError(errors.ErrCodeCorruptDocument,
				"Malformed DOCX structure", fmt.Errorf("docx reader panic: %v", r))
		}
	}()

	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.NewExtractionError(errors.ErrCodeCorruptDocument,
			"Unreadable DOCX document", err)
	}

	fontUsage := make(map[string]int)
	var builder strings.Builder

	for _, para := range doc.Paragraphs() {
		var line strings.Builder
		for _, run := range para.Runs() {
			text := run.Text()
			if text == "" {
				continue
			}
			line.WriteString(text)
			if font := runFont(run); font != "" {
				fontUsage[font]++
			}
		}
		builder.WriteString(line.String())
		builder.WriteByte('\n')
	}

	return &types.ExtractedDocument{
		Text:      builder.String(),
		PageCount: 1,
		FontUsage: fontUsage,
	}, nil
}

// runFont digs the ASCII font name out of the run properties, if declared.
func runFont(run document.Run) string {
	ct := run.X()
	if ct == nil || ct.RPr == nil || ct.RPr.RFonts == nil || ct.RPr.RFonts.AsciiAttr == nil {
		return ""
	}
	return *ct.RPr.RFonts.AsciiAttr
}
