// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm provides the deterministic text preprocessing applied to
// corpus questions and user queries before indexing and matching.
package textnorm

import (
	"strings"
	"unicode"
)

// Normalize lowercases text, removes every rune that is neither
// alphanumeric nor whitespace, and collapses whitespace runs to single
// spaces. It is pure, total, and idempotent: Normalize(Normalize(s)) ==
// Normalize(s) for all inputs. Symbol-only input yields the empty string.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Tokens normalizes text and splits it into words. Returns nil for input
// with no alphanumeric content.
func Tokens(text string) []string {
	norm := Normalize(text)
	if norm == "" {
		return nil
	}
	return strings.Split(norm, " ")
}

// TokenSet returns the distinct normalized words of text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokens(text)
	if tokens == nil {
		return nil
	}
	set := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		set[tok] = struct{}{}
	}
	return set
}
