// Package ingest turns an input document into the UTF-8 text blob the verse
// pipeline reads: plain text, hOCR output of an OCR engine, or the text layer
// of a PDF.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned for file extensions ingest cannot read.
var ErrUnsupportedFormat = errors.New("ingest: unsupported format")

// ErrInvalidUTF8 is returned when a text input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("ingest: input is not valid UTF-8")

// Format names an input kind.
type Format string

const (
	FormatText Format = "text"
	FormatHOCR Format = "hocr"
	FormatPDF  Format = "pdf"
)

// Detect maps a file name to its Format by extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".text", ".md":
		return FormatText, nil
	case ".html", ".htm", ".hocr":
		return FormatHOCR, nil
	case ".pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadFile reads path and returns its text content.
func ReadFile(path string) (string, error) {
	format, err := Detect(path)
	if err != nil {
		return "", err
	}
	if format == FormatPDF {
		return ReadPDF(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatHOCR {
		return ReadHOCR(f, DefaultHOCROptions)
	}
	return ReadText(f)
}

// ReadText reads r fully and rejects invalid UTF-8.
func ReadText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("ingest: read: %w", err)
	}
	if !utf8.Valid(b) {
		return "", ErrInvalidUTF8
	}
	return string(b), nil
}
