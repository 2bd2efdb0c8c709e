// Package classify decides whether a single line of mixed OCR or model output
// is a candidate verse. The decision is an ordered list of named drop rules;
// the first rule that fires wins and a line no rule fires on is kept.
package classify

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gptpoet/qasida/internal/arabic"
	"github.com/gptpoet/qasida/internal/registry"
)

// Verdict is the outcome of classifying one line.
type Verdict int

const (
	Drop Verdict = iota
	Keep
)

func (v Verdict) String() string {
	if v == Keep {
		return "KEEP"
	}
	return "DROP"
}

// Rule names, in evaluation order.
const (
	RuleEmpty        = "empty"
	RuleFilterPhrase = "filter-phrase"
	RuleExplanation  = "explanation"
	RuleNotCandidate = "not-candidate"
	RuleSeparator    = "separator-guard"
)

// Decision is a verdict plus the rule that produced it. Rule is empty for Keep.
type Decision struct {
	Verdict Verdict
	Rule    string
	Detail  string // matched phrase or pattern name, when there is one
}

// line is the per-line view shared by the rules.
type line struct {
	text string // trimmed
	reg  *registry.Registry
}

// rule drops a line when match reports true. match may return a detail string.
type rule struct {
	name  string
	match func(l line) (string, bool)
}

// Classifier applies the drop rules against one Registry. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	reg   *registry.Registry
	rules []rule
}

// New returns a Classifier backed by reg.
func New(reg *registry.Registry) *Classifier {
	return &Classifier{reg: reg, rules: defaultRules}
}

// Rules returns the rule names in evaluation order.
func (c *Classifier) Rules() []string {
	names := make([]string, len(c.rules))
	for i, r := range c.rules {
		names[i] = r.name
	}
	return names
}

// Classify returns Keep or Drop for s.
func (c *Classifier) Classify(s string) Verdict { return c.Decide(s).Verdict }

// Decide runs the rules in order and reports which one, if any, dropped s.
func (c *Classifier) Decide(s string) Decision {
	l := line{text: strings.TrimSpace(s), reg: c.reg}
	for _, r := range c.rules {
		if detail, ok := r.match(l); ok {
			return Decision{Verdict: Drop, Rule: r.name, Detail: detail}
		}
	}
	return Decision{Verdict: Keep}
}

var defaultRules = []rule{
	{RuleEmpty, func(l line) (string, bool) {
		return "", l.text == ""
	}},
	{RuleFilterPhrase, func(l line) (string, bool) {
		return l.reg.FilterPhrase(Key(l.text))
	}},
	{RuleExplanation, func(l line) (string, bool) {
		p, ok := l.reg.Explanation(l.text)
		return p.Name, ok
	}},
	{RuleNotCandidate, func(l line) (string, bool) {
		return "", !IsCandidate(l.reg, l.text)
	}},
	// Vetoes every candidate holding ':', '=' or '-', including lines the
	// dash-lead poetry pattern accepted. Kept as is; see known edge case tests.
	{RuleSeparator, func(l line) (string, bool) {
		i := strings.IndexAny(l.text, ":=-")
		if i < 0 {
			return "", false
		}
		return l.text[i : i+1], true
	}},
}

// Key is the form filter phrases are matched against.
func Key(s string) string {
	return arabic.Normalize(strings.ToLower(s))
}

var arabicRun = regexp.MustCompile(`[\x{0600}-\x{06FF}]{5,}`)

// IsCandidate is the heuristic acceptance test applied before the
// separator guard.
func IsCandidate(reg *registry.Registry, s string) bool {
	if _, ok := reg.Poetry(s); ok {
		return true
	}
	if len(strings.Fields(s)) >= 3 && strings.IndexFunc(s, unicode.IsLetter) >= 0 {
		return true
	}
	if strings.ContainsRune(s, arabic.Comma) || strings.ContainsRune(s, arabic.Semicolon) {
		return true
	}
	return arabicRun.MatchString(s)
}
