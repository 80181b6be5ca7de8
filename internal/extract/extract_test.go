package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescan/internal/errors"
	"resumescan/internal/types"
)

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	logger, err := errors.New("error")
	require.NoError(t, err)
	return New(logger)
}

func appErrCode(t *testing.T, err error) string {
	t.Helper()
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Code
}

func TestExtractTXT(t *testing.T) {
	extractor := testExtractor(t)
	doc := &types.Document{
		Filename: "resume.txt",
		Data:     []byte("Jane Smith\r\nEngineer\r\n\r\n\r\n\r\nSkills: Go"),
		Size:     40,
	}

	extracted, err := extractor.Extract(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, types.FormatTXT, extracted.Format)
	assert.Equal(t, "Jane Smith\nEngineer\n\nSkills: Go", extracted.Text)
	assert.Equal(t, []string{"Jane Smith", "Engineer", "", "Skills: Go"}, extracted.Lines)
}

func TestExtractRejectsOversizedFile(t *testing.T) {
	extractor := testExtractor(t)
	doc := &types.Document{
		Filename: "big.txt",
		Data:     []byte("x"),
		Size:     MaxFileSize + 1,
	}

	_, err := extractor.Extract(context.Background(), doc)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeFileTooLarge, appErrCode(t, err))
}

func TestExtractRejectsEmptyFile(t *testing.T) {
	extractor := testExtractor(t)
	for _, data := range [][]byte{nil, []byte("   \n\t  ")} {
		doc := &types.Document{Filename: "empty.txt", Data: data, Size: int64(len(data))}
		_, err := extractor.Extract(context.Background(), doc)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeCorruptDocument, appErrCode(t, err))
	}
}

func TestExtractCorruptPDF(t *testing.T) {
	extractor := testExtractor(t)
	doc := &types.Document{
		Filename: "broken.pdf",
		Data:     []byte("%PDF-1.7 not really a pdf"),
		Size:     25,
	}

	_, err := extractor.Extract(context.Background(), doc)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCorruptDocument, appErrCode(t, err))
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		data     []byte
		want     types.DocumentFormat
	}{
		{"extension pdf", "cv.pdf", []byte("%PDF-1.4 ..."), types.FormatPDF},
		{"extension docx with zip magic", "cv.docx", []byte("PK\x03\x04rest"), types.FormatDOCX},
		{"extension doc with ole magic", "cv.doc", []byte{0xD0, 0xCF, 0x11, 0xE0, 0x00}, types.FormatDOC},
		{"extension txt", "cv.txt", []byte("plain text"), types.FormatTXT},
		{"content overrides extension", "cv.txt", []byte("%PDF-1.4 binary"), types.FormatPDF},
		{"no extension but text", "resume", []byte("A plain text resume body"), types.FormatTXT},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := DetectFormat(&types.Document{Filename: tt.filename, Data: tt.data})
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestDetectFormatUnsupported(t *testing.T) {
	binary := make([]byte, 64)
	for i := range binary {
		binary[i] = byte(i % 8)
	}

	_, err := DetectFormat(&types.Document{Filename: "image.bin", Data: binary})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnsupportedFormat, appErrCode(t, err))
}

func TestLooksLikeText(t *testing.T) {
	assert.True(t, looksLikeText([]byte("ordinary prose with numbers 123")))
	assert.False(t, looksLikeText(nil))
	assert.False(t, looksLikeText([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}))
}

func TestNormalizeText(t *testing.T) {
	in := "a\r\nb\rc\n\n\n\n\nd\n"
	assert.Equal(t, "a\nb\nc\n\nd", normalizeText(in))
	assert.Equal(t, "", normalizeText("  \n \n "))
}

func TestExtractHonorsContext(t *testing.T) {
	extractor := testExtractor(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// A cancelled context can still lose the race to a fast extraction, so
	// accept either outcome but never a hang.
	_, err := extractor.Extract(ctx, &types.Document{
		Filename: "resume.txt",
		Data:     []byte(strings.Repeat("line of resume text\n", 200)),
		Size:     4000,
	})
	if err != nil {
		assert.Equal(t, errors.ErrCodeExtractionTimeout, appErrCode(t, err))
	}
}
