// Package registry holds the read-only phrase and pattern tables that drive
// line classification. A Registry is built once and shared by every line of
// every run without locking; nothing mutates it after construction.
package registry

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternSpec is the uncompiled form of a named pattern.
type PatternSpec struct {
	Name string
	Expr string
}

// Pattern is a compiled, named regular expression.
type Pattern struct {
	Name string
	re   *regexp.Regexp
}

// MatchString reports whether the pattern matches anywhere in s.
func (p Pattern) MatchString(s string) bool { return p.re.MatchString(s) }

// String returns the source expression.
func (p Pattern) String() string { return p.re.String() }

// Registry is the immutable configuration of the classifier.
type Registry struct {
	phrases      []string
	explanations []Pattern
	poetry       []Pattern
}

// New compiles the given tables into a Registry. Phrases are matched as
// literal substrings of the normalized line; patterns against the line as read.
func New(phrases []string, explanations, poetry []PatternSpec) (*Registry, error) {
	r := &Registry{phrases: make([]string, 0, len(phrases))}
	for _, p := range phrases {
		if p == "" {
			return nil, fmt.Errorf("registry: empty filter phrase")
		}
		r.phrases = append(r.phrases, strings.ToLower(p))
	}
	var err error
	if r.explanations, err = compile("explanation", explanations); err != nil {
		return nil, err
	}
	if r.poetry, err = compile("poetry", poetry); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is like New but panics on an invalid table.
func MustNew(phrases []string, explanations, poetry []PatternSpec) *Registry {
	r, err := New(phrases, explanations, poetry)
	if err != nil {
		panic(err)
	}
	return r
}

func compile(kind string, specs []PatternSpec) ([]Pattern, error) {
	out := make([]Pattern, 0, len(specs))
	for _, s := range specs {
		re, err := regexp.Compile(s.Expr)
		if err != nil {
			return nil, fmt.Errorf("registry: %s pattern %q: %w", kind, s.Name, err)
		}
		out = append(out, Pattern{Name: s.Name, re: re})
	}
	return out, nil
}

// FilterPhrase returns the first filter phrase contained in key.
// key must already be lower-cased and diacritic-normalized.
func (r *Registry) FilterPhrase(key string) (string, bool) {
	for _, p := range r.phrases {
		if strings.Contains(key, p) {
			return p, true
		}
	}
	return "", false
}

// Explanation returns the first explanation pattern matching line.
func (r *Registry) Explanation(line string) (Pattern, bool) {
	return firstMatch(r.explanations, line)
}

// Poetry returns the first poetry pattern matching line.
func (r *Registry) Poetry(line string) (Pattern, bool) {
	return firstMatch(r.poetry, line)
}

func firstMatch(ps []Pattern, s string) (Pattern, bool) {
	for _, p := range ps {
		if p.MatchString(s) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Phrases returns a copy of the filter phrase table.
func (r *Registry) Phrases() []string {
	return append([]string(nil), r.phrases...)
}

// Explanations returns a copy of the explanation pattern table.
func (r *Registry) Explanations() []Pattern {
	return append([]Pattern(nil), r.explanations...)
}

// PoetryPatterns returns a copy of the poetry pattern table.
func (r *Registry) PoetryPatterns() []Pattern {
	return append([]Pattern(nil), r.poetry...)
}
