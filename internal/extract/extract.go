// Package extract turns uploaded resume files into plain text plus the
// layout signals (fonts, pages) the analysis pipeline consumes.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

// Size ceilings enforced before any extraction work happens.
const (
	MaxFileSize  = 5 * 1024 * 1024  // per file
	MaxBatchSize = 10 * 1024 * 1024 // aggregate across a batch
)

// minSalvageChars is the least visible text a legacy .doc salvage must
// produce before the document counts as readable.
const minSalvageChars = 150

// Magic prefixes used to cross-check the declared format.
var (
	magicPDF = []byte("%PDF-")
	magicZIP = []byte("PK\x03\x04")
	magicOLE = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// Extractor converts uploads into ExtractedDocuments. It is stateless and
// safe for concurrent use.
type Extractor struct {
	logger *errors.Logger
}

// New creates an extractor.
func New(logger *errors.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract detects the document format, enforces the size ceiling and runs
// the format-specific extraction under the caller's context. A context
// deadline maps to EXTRACTION_TIMEOUT.
func (e *Extractor) Extract(ctx context.Context, doc *types.Document) (*types.ExtractedDocument, error) {
	if doc.Size > MaxFileSize || int64(len(doc.Data)) > MaxFileSize {
		return nil, errors.NewValidationError(errors.ErrCodeFileTooLarge,
			fmt.Sprintf("File exceeds the %d MB limit", MaxFileSize/(1024*1024)), nil).
			WithContext("filename", doc.Filename).
			WithContext("size", doc.Size)
	}
	if len(bytes.TrimSpace(doc.Data)) == 0 {
		return nil, errors.NewExtractionError(errors.ErrCodeCorruptDocument,
			"File is empty", nil).WithContext("filename", doc.Filename)
	}

	format, err := DetectFormat(doc)
	if err != nil {
		return nil, err
	}

	type outcome struct {
		extracted *types.ExtractedDocument
		err       error
	}
	done := make(chan outcome, 1)
	go func() {
		extracted, err := e.extractFormat(format, doc.Data)
		done <- outcome{extracted, err}
	}()

	select {
	case <-ctx.Done():
		return nil, errors.NewExtractionError(errors.ErrCodeExtractionTimeout,
			"Extraction did not finish in time", ctx.Err()).
			WithContext("filename", doc.Filename).
			WithContext("format", string(format))
	case out := <-done:
		if out.err != nil {
			return nil, out.err
		}
		return finalize(out.extracted, format, doc.Filename)
	}
}

func (e *Extractor) extractFormat(format types.DocumentFormat, data []byte) (*types.ExtractedDocument, error) {
	switch format {
	case types.FormatPDF:
		return extractPDF(data)
	case types.FormatDOCX:
		return extractDOCX(data)
	case types.FormatDOC:
		return extractDOC(data)
	case types.FormatTXT:
		return extractTXT(data)
	default:
		return nil, errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			fmt.Sprintf("Unsupported document format: %s", format), nil)
	}
}

// DetectFormat resolves the document format from the filename extension,
// cross-checked against magic bytes. When the content contradicts the
// extension, the content wins.
func DetectFormat(doc *types.Document) (types.DocumentFormat, error) {
	byExt := formatFromExtension(doc.Filename)
	bySniff := formatFromMagic(doc.Data)

	if bySniff != "" && bySniff != byExt {
		return bySniff, nil
	}
	if byExt != "" {
		return byExt, nil
	}
	if looksLikeText(doc.Data) {
		return types.FormatTXT, nil
	}
	return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
		fmt.Sprintf("Unsupported file type %q; accepted formats are pdf, docx, doc, txt", filepath.Ext(doc.Filename)), nil).
		WithContext("filename", doc.Filename)
}

func formatFromExtension(filename string) types.DocumentFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return types.FormatPDF
	case ".docx":
		return types.FormatDOCX
	case ".doc":
		return types.FormatDOC
	case ".txt":
		return types.FormatTXT
	}
	return ""
}

func formatFromMagic(data []byte) types.DocumentFormat {
	switch {
	case bytes.HasPrefix(data, magicPDF):
		return types.FormatPDF
	case bytes.HasPrefix(data, magicZIP):
		return types.FormatDOCX
	case bytes.HasPrefix(data, magicOLE):
		return types.FormatDOC
	}
	return ""
}

// looksLikeText accepts data whose sampled bytes are overwhelmingly
// printable, so extension-less plain text still scans.
func looksLikeText(data []byte) bool {
	sample := data
	if len(sample) > 512 {
		sample = sample[:512]
	}
	if len(sample) == 0 {
		return false
	}
	printable := 0
	for _, b := range sample {
		if b == '\n' || b == '\r' || b == '\t' || (b >= 0x20 && b < 0x7F) || b >= 0x80 {
			printable++
		}
	}
	return float64(printable)/float64(len(sample)) > 0.95
}

// finalize normalizes the extracted text, splits lines and rejects
// documents that yielded nothing readable.
func finalize(extracted *types.ExtractedDocument, format types.DocumentFormat, filename string) (*types.ExtractedDocument, error) {
	extracted.Format = format
	extracted.Text = normalizeText(extracted.Text)
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, errors.NewExtractionError(errors.ErrCodeCorruptDocument,
			"No extractable text in document", nil).
			WithContext("filename", filename).
			WithContext("format", string(format))
	}
	extracted.Lines = strings.Split(extracted.Text, "\n")
	return extracted, nil
}

func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	// Collapse runs of 3+ blank lines left behind by layout extraction.
	for strings.Contains(text, "\n\n\n") {
		text = strings.ReplaceAll(text, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(text)
}
