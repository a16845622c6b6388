// ABOUTME: Small text helpers for aligned CLI output.
// ABOUTME: Rune-aware truncation and padding plus faint notes suffixes.
package main

import (
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	r := []rune(s)
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func notesSuffix(notes string) string {
	if notes == "" {
		return ""
	}
	return color.New(color.Faint).Sprintf(" (%s)", truncate(notes, 30))
}
