package cv

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const maxPreviewRunes = 4000

// extractTextPreview pulls plain text out of a PDF for quick inspection.
// Best-effort; a resume that fails to parse is still stored.
func extractTextPreview(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	text := strings.TrimSpace(buf.String())
	runes := []rune(text)
	if len(runes) > maxPreviewRunes {
		text = string(runes[:maxPreviewRunes])
	}
	return text, nil
}
