package detect

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"paperforge/internal/util"

	"github.com/ledongthuc/pdf"
)

// ExtractText pulls the plain text out of PDF bytes. Control bytes from the
// extractor are sanitized away; an empty result is ErrNoExtractableText.
func ExtractText(pdfBytes []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(pdfBytes), int64(len(pdfBytes)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", util.ErrNoExtractableText, err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: extract pdf text: %v", util.ErrNoExtractableText, err)
	}
	buf := new(strings.Builder)
	if _, err := io.Copy(buf, plain); err != nil {
		return "", fmt.Errorf("read extracted text: %w", err)
	}
	text := util.SanitizeText(buf.String())
	if text == "" {
		return "", util.ErrNoExtractableText
	}
	return text, nil
}
