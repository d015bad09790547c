package faq

import (
	"strings"
	"unicode/utf8"
)

func normalizeMessage(message string) string {
	return strings.ToLower(message)
}

// matchTerms lower-cases and trims keyword terms, discarding blanks.
func matchTerms(keywords Keywords) []string {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		// stored terms may still carry separators from legacy rows
		for _, part := range strings.Split(kw, keywordSeparator) {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			terms = append(terms, part)
		}
	}
	return terms
}

func termLength(term string) int {
	return utf8.RuneCountInString(term)
}
