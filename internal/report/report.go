// Package report writes pipeline output for operators: the plain verse file,
// a CSV with source positions, and a short console preview.
package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/gptpoet/qasida/internal/model"
	"github.com/gptpoet/qasida/internal/pipeline"
	"github.com/gptpoet/qasida/internal/store"
)

// WriteLines writes one verse per line, each followed by '\n'.
func WriteLines(path string, lines []model.CleanedLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, l := range lines {
		w.WriteString(l.Text)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return f.Close()
}

// WriteCSV writes id,label,position,text_body rows, ids starting at 1.
func WriteCSV(path, source string, lines []model.CleanedLine) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"id", "label", "position", "text_body"})
	for i, l := range lines {
		w.Write([]string{
			strconv.Itoa(i + 1),
			store.Label(source, l.Position),
			strconv.Itoa(l.Position),
			l.Text,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return f.Close()
}

// Preview prints the count and the first n lines.
func Preview(w io.Writer, lines []model.CleanedLine, n int) {
	fmt.Fprintf(w, "\nExtracted %d poetry lines. Here are some examples:\n", len(lines))
	for i, l := range lines {
		if i >= n {
			break
		}
		fmt.Fprintf(w, "- %s\n", l.Text)
	}
}

// Stats prints per-rule drop counts, sorted by rule name.
func Stats(w io.Writer, st pipeline.Stats) {
	fmt.Fprintf(w, "lines=%d kept=%d emitted=%d\n", st.Lines, st.Kept, st.Emitted)
	rules := make([]string, 0, len(st.Dropped))
	for r := range st.Dropped {
		rules = append(rules, r)
	}
	sort.Strings(rules)
	for _, r := range rules {
		fmt.Fprintf(w, "  dropped %-16s %d\n", r, st.Dropped[r])
	}
}
