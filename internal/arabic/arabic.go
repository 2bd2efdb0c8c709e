// Package arabic holds the character tables shared by the verse pipeline:
// the fixed set of combining marks stripped from every line and a few
// helpers for recognising Arabic-script text.
package arabic

import (
	"strings"
	"unicode"
)

// Diacritics is the exact set of combining marks removed by Normalize.
var Diacritics = []rune{
	'\u064B', // fathatan
	'\u064C', // dammatan
	'\u064D', // kasratan
	'\u064E', // fatha
	'\u064F', // damma
	'\u0650', // kasra
	'\u0651', // shadda
	'\u0652', // sukun
	'\u0653', // maddah above
	'\u0654', // hamza above
	'\u0655', // hamza below
	'\u0656', // subscript alef
	'\u0657', // inverted damma
	'\u0658', // mark noon ghunna
	'\u0659', // zwarakay
	'\u065A', // vowel sign small v above
	'\u065B', // vowel sign inverted small v above
	'\u065C', // vowel sign dot below
	'\u065D', // reversed damma
	'\u065E', // fatha with two dots
	'\u065F', // wavy hamza below
	'\u0670', // superscript alef
}

var diacriticSet = func() map[rune]bool {
	m := make(map[rune]bool, len(Diacritics))
	for _, r := range Diacritics {
		m[r] = true
	}
	return m
}()

// IsDiacritic reports whether r is one of the marks in Diacritics.
func IsDiacritic(r rune) bool { return diacriticSet[r] }

// Normalize returns s with every rune in Diacritics removed. All other runes
// keep their relative order. Normalize is idempotent.
func Normalize(s string) string {
	if strings.IndexFunc(s, IsDiacritic) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if diacriticSet[r] {
			return -1
		}
		return r
	}, s)
}

// Main Arabic block.
const (
	BlockStart = '\u0600'
	BlockEnd   = '\u06FF'
)

// Comma and Semicolon are the Arabic sentence-internal punctuation marks.
const (
	Comma     = '\u060C'
	Semicolon = '\u061B'
)

// InBlock reports whether r lies in the main Arabic block.
func InBlock(r rune) bool { return r >= BlockStart && r <= BlockEnd }

// Mostly reports whether more than half of the letters in s are Arabic.
// Ingest uses it to pick the reading direction of an OCR line.
func Mostly(s string) bool {
	var ar, letters int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if InBlock(r) {
			ar++
		}
	}
	return letters > 0 && ar*2 > letters
}
