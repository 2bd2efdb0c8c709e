package ingest

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gptpoet/qasida/internal/arabic"
)

// HOCROptions tunes the layout heuristics applied to hOCR pages.
type HOCROptions struct {
	FootnoteFrac float64 // drop lines whose top Y >= this fraction of page height; 0 keeps all
	SuperRisePx  int     // words whose top is above (lineTop - SuperRisePx) are superscripts
}

// DefaultHOCROptions keeps footnotes (commentary is filtered later) and
// drops superscript reference marks.
var DefaultHOCROptions = HOCROptions{SuperRisePx: 5}

type bbox struct{ x0, y0, x1, y1 int }

var reBBox = regexp.MustCompile(`bbox\s+(\d+)\s+(\d+)\s+(\d+)\s+(\d+)`)

func parseBBox(title string) (bbox, bool) {
	m := reBBox.FindStringSubmatch(title)
	if m == nil {
		return bbox{}, false
	}
	return bbox{atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4])}, true
}

func atoi(s string) int {
	i, _ := strconv.Atoi(s)
	return i
}

type word struct {
	x0, x1 int
	t      string
}

// ReadHOCR returns one text line per .ocr_line, pages separated by a blank
// line. Words are put in reading order by their boxes: right to left for
// Arabic lines, left to right otherwise.
func ReadHOCR(r io.Reader, opt HOCROptions) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("ingest: parse hOCR: %w", err)
	}

	var pages []string
	doc.Find(".ocr_page").Each(func(_ int, pg *goquery.Selection) {
		footCut := -1
		if pb, ok := parseBBox(getAttr(pg, "title")); ok && opt.FootnoteFrac > 0 {
			footCut = pb.y0 + int(float64(pb.y1-pb.y0)*opt.FootnoteFrac)
		}

		var lines []string
		pg.Find(".ocr_line, .ocr_header, .ocr_caption, .ocr_textfloat").Each(func(_ int, ln *goquery.Selection) {
			lb, ok := parseBBox(getAttr(ln, "title"))
			if !ok {
				return
			}
			if footCut >= 0 && lb.y0 >= footCut {
				return
			}
			ws := make([]word, 0, 8)
			ln.Find(".ocrx_word").Each(func(_ int, w *goquery.Selection) {
				wb, ok := parseBBox(getAttr(w, "title"))
				if !ok {
					return
				}
				text := strings.TrimSpace(w.Text())
				if text == "" {
					return
				}
				if wb.y0 < lb.y0-opt.SuperRisePx {
					return
				}
				ws = append(ws, word{x0: wb.x0, x1: wb.x1, t: text})
			})
			if len(ws) == 0 {
				return
			}
			lines = append(lines, joinWords(ws))
		})
		pages = append(pages, strings.Join(lines, "\n"))
	})
	return strings.Join(pages, "\n\n"), nil
}

func joinWords(ws []word) string {
	texts := make([]string, len(ws))
	for i, w := range ws {
		texts[i] = w.t
	}
	if arabic.Mostly(strings.Join(texts, " ")) {
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].x1 > ws[j].x1 })
	} else {
		sort.SliceStable(ws, func(i, j int) bool { return ws[i].x0 < ws[j].x0 })
	}
	for i, w := range ws {
		texts[i] = w.t
	}
	return strings.Join(texts, " ")
}

func getAttr(s *goquery.Selection, key string) string {
	if v, ok := s.Attr(key); ok {
		return v
	}
	return ""
}
