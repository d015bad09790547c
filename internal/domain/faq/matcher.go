package faq

import "strings"

// MatchResult describes the winning entry of a match evaluation.
type MatchResult struct {
	Entry Entry
	Term  string
}

// Match returns the answer of the best active entry for language whose
// keywords occur in message, or false when nothing matches.
//
// Keywords match as case-insensitive substrings, so "help" also fires on
// "helpful". Ties go to the longest matching term, then the newest entry,
// then the lowest ID.
func Match(message, language string, candidates []Entry) (string, bool) {
	result, ok := BestMatch(message, language, candidates)
	if !ok {
		return "", false
	}
	return result.Entry.Answer, true
}

// BestMatch is Match but reports the full winning entry and the term that fired.
// candidates is never modified.
func BestMatch(message, language string, candidates []Entry) (MatchResult, bool) {
	normalized := normalizeMessage(message)
	if normalized == "" {
		return MatchResult{}, false
	}

	var (
		best    MatchResult
		bestLen int
		found   bool
	)
	for _, candidate := range candidates {
		if !candidate.IsActive || candidate.Language != language {
			continue
		}
		term, ok := longestTerm(normalized, candidate.Keywords)
		if !ok {
			continue
		}
		length := termLength(term)
		if !found || outranks(candidate, length, best.Entry, bestLen) {
			best = MatchResult{Entry: candidate, Term: term}
			bestLen = length
			found = true
		}
	}
	return best, found
}

func longestTerm(message string, keywords Keywords) (string, bool) {
	var (
		best    string
		bestLen int
		found   bool
	)
	for _, term := range matchTerms(keywords) {
		if !strings.Contains(message, term) {
			continue
		}
		if length := termLength(term); !found || length > bestLen {
			best, bestLen, found = term, length, true
		}
	}
	return best, found
}

func outranks(candidate Entry, candidateLen int, current Entry, currentLen int) bool {
	if candidateLen != currentLen {
		return candidateLen > currentLen
	}
	if !candidate.CreatedAt.Equal(current.CreatedAt) {
		return candidate.CreatedAt.After(current.CreatedAt)
	}
	return candidate.ID < current.ID
}
