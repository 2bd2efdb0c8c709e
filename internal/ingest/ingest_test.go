package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleHOCR = `<!DOCTYPE html>
<html><body>
<div class="ocr_page" title="image &quot;p1.png&quot;; bbox 0 0 1000 1000; ppageno 0">
  <span class="ocr_line" title="bbox 100 100 900 130">
    <span class="ocrx_word" title="bbox 400 100 600 130">نبك</span>
    <span class="ocrx_word" title="bbox 700 100 900 130">قفا</span>
    <span class="ocrx_word" title="bbox 640 80 660 90">١</span>
  </span>
  <span class="ocr_line" title="bbox 100 200 900 230">
    <span class="ocrx_word" title="bbox 500 200 600 230">world</span>
    <span class="ocrx_word" title="bbox 100 200 300 230">hello</span>
  </span>
  <span class="ocr_line" title="bbox 100 900 900 930">
    <span class="ocrx_word" title="bbox 100 900 900 930">حاشية</span>
  </span>
  <span class="ocr_line" title="no box here">
    <span class="ocrx_word" title="bbox 1 1 2 2">lost</span>
  </span>
</div>
<div class="ocr_page" title="bbox 0 0 1000 1000; ppageno 1">
  <span class="ocr_line" title="bbox 100 100 900 130">
    <span class="ocrx_word" title="bbox 100 100 900 130">ومنزل</span>
    <span class="ocrx_word" title="bbox 100 100 900 130">   </span>
  </span>
</div>
</body></html>`

func TestReadHOCR(t *testing.T) {
	tests := []struct {
		name string
		opt  HOCROptions
		want string
	}{
		{"default keeps footnotes", DefaultHOCROptions, "قفا نبك\nhello world\nحاشية\n\nومنزل"},
		{"footnote cut", HOCROptions{FootnoteFrac: 0.82, SuperRisePx: 5}, "قفا نبك\nhello world\n\nومنزل"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadHOCR(strings.NewReader(sampleHOCR), tt.opt)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ReadHOCR =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"poetry.txt", FormatText},
		{"poetry", FormatText},
		{"notes.MD", FormatText},
		{"scan.hocr", FormatHOCR},
		{"scan.html", FormatHOCR},
		{"book.PDF", FormatPDF},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := Detect(tt.path)
			if err != nil || got != tt.want {
				t.Errorf("Detect(%q) = %q, %v; want %q", tt.path, got, err, tt.want)
			}
		})
	}

	if _, err := Detect("image.png"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Detect(png) err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	txt := filepath.Join(dir, "poetry.txt")
	os.WriteFile(txt, []byte("قفا نبك\nمن ذكرى"), 0644)
	got, err := ReadFile(txt)
	if err != nil {
		t.Fatal(err)
	}
	if got != "قفا نبك\nمن ذكرى" {
		t.Errorf("ReadFile(txt) = %q", got)
	}

	hocr := filepath.Join(dir, "scan.hocr")
	os.WriteFile(hocr, []byte(sampleHOCR), 0644)
	got, err = ReadFile(hocr)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "قفا نبك\n") {
		t.Errorf("ReadFile(hocr) = %q", got)
	}

	bad := filepath.Join(dir, "bad.txt")
	os.WriteFile(bad, []byte{0xff, 0xfe, 'a'}, 0644)
	if _, err := ReadFile(bad); !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("ReadFile(invalid) err = %v, want ErrInvalidUTF8", err)
	}

	if _, err := ReadFile(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("ReadFile(missing) = nil error")
	}

	if _, err := ReadFile(filepath.Join(dir, "broken.pdf")); err == nil {
		t.Error("ReadFile(missing pdf) = nil error")
	}
}
