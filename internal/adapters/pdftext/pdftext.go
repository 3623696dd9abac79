// Package pdftext extracts plain text from PDF documents.
package pdftext

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// MaxTextBytes caps extracted text so a pathological document cannot bloat a
// database row.
const MaxTextBytes = 512 << 10

// Extractor implements ports.ResumeTextExtractor for PDF documents.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() Extractor { return Extractor{} }

// ExtractText returns the plain text of a PDF, truncated to MaxTextBytes.
func (Extractor) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty document")
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, io.LimitReader(textReader, MaxTextBytes)); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return strings.TrimSpace(sb.String()), nil
}
