package ingest

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"
)

// ReadPDF extracts the embedded text layer of a PDF, one page after another
// separated by a blank line. Scanned pages without a text layer come back
// empty; those need OCR first.
func ReadPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("ingest: open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("ingest: pdf page %d: %w", i, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, norm.NFC.String(text))
		}
	}
	return strings.Join(pages, "\n\n"), nil
}
