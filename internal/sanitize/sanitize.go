// Package sanitize strips residual metadata from a line the classifier kept:
// verse numbers, page references, bracketed notes, quotation marks, a
// comma-terminated lead-in and any leftover diacritics.
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gptpoet/qasida/internal/arabic"
)

// MinRunes is the length floor: a cleaned line must be longer than this.
const MinRunes = 10

// Step is one named transform of the sanitizer.
type Step struct {
	Name  string
	Apply func(string) string
}

// Result of one step, as reported by Trace.
type Result struct {
	Step string
	Text string
}

var (
	reLeadingNumber = regexp.MustCompile(`^\p{Nd}+[\s-]*`)
	reTrailingNum   = regexp.MustCompile(`\p{Nd}+$`)
	reBrackets      = regexp.MustCompile(`\[.*?\]`)
	reParens        = regexp.MustCompile(`\(.*?\)`)
	reLeadingDash   = regexp.MustCompile(`^[-\s]+`)
	reLeadIn        = regexp.MustCompile(`^[^،]*،\s*`)
)

var quotes = strings.NewReplacer(
	`"`, "",
	"“", "",
	"”", "",
	"„", "",
	"‟", "",
	"«", "",
	"»", "",
)

func replace(re *regexp.Regexp) func(string) string {
	return func(s string) string { return re.ReplaceAllString(s, "") }
}

// Steps is the fixed order in which transforms run.
var Steps = []Step{
	{"leading-number", replace(reLeadingNumber)},
	{"trailing-number", replace(reTrailingNum)},
	{"brackets", func(s string) string {
		return reParens.ReplaceAllString(reBrackets.ReplaceAllString(s, ""), "")
	}},
	{"leading-dash", replace(reLeadingDash)},
	{"quotes", quotes.Replace},
	{"lead-in", replace(reLeadIn)},
	{"diacritics", arabic.Normalize},
	{"trim", strings.TrimSpace},
}

// Sanitizer applies Steps in order. The zero value is ready to use.
type Sanitizer struct{}

// New returns a Sanitizer.
func New() *Sanitizer { return &Sanitizer{} }

// Sanitize cleans line and reports whether the result clears the length floor.
func (s *Sanitizer) Sanitize(line string) (string, bool) {
	for _, st := range Steps {
		line = st.Apply(line)
	}
	if utf8.RuneCountInString(line) <= MinRunes {
		return "", false
	}
	return line, true
}

// Trace returns the text after every step, for debugging rule interactions.
func (s *Sanitizer) Trace(line string) []Result {
	out := make([]Result, 0, len(Steps))
	for _, st := range Steps {
		line = st.Apply(line)
		out = append(out, Result{Step: st.Name, Text: line})
	}
	return out
}
