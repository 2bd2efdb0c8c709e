package model

import "strings"

// RawLine is one line of input text, as split on '\n'.
type RawLine struct {
	Index int    // 0-based position in the input
	Text  string // untrimmed
}

// CleanedLine is a kept, sanitized line.
type CleanedLine struct {
	Position int    // Index of the RawLine it came from
	Text     string // trimmed, longer than the length floor
}

// SplitLines splits text on '\n' keeping every line, empty ones included,
// so indexes match the input.
func SplitLines(text string) []RawLine {
	parts := strings.Split(text, "\n")
	out := make([]RawLine, len(parts))
	for i, p := range parts {
		out[i] = RawLine{Index: i, Text: p}
	}
	return out
}

// Texts returns the text of each line, in order.
func Texts(lines []CleanedLine) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

// Verse is a stored cleaned line.
type Verse struct {
	ID       int64
	RunID    int64
	Label    string // eg: "kotobati.txt#12" (source and position)
	Position int
	Body     string // verse text
	PostID   string // set once posted
}
