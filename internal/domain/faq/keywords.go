package faq

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const keywordSeparator = ","

// Keywords is the ordered set of trigger terms for an entry.
type Keywords []string

// ParseKeywords splits the comma separated storage form into terms.
// Blank terms and exact duplicates are dropped; order is preserved.
func ParseKeywords(raw string) Keywords {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return cleanKeywords(strings.Split(raw, keywordSeparator))
}

// String returns the comma separated storage form.
func (k Keywords) String() string {
	return strings.Join(k, keywordSeparator)
}

// UnmarshalJSON accepts either a JSON array or the comma separated string
// posted by the admin form.
func (k *Keywords) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*k = nil
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		*k = ParseKeywords(raw)
		return nil
	}
	var terms []string
	if err := json.Unmarshal(trimmed, &terms); err != nil {
		return fmt.Errorf("keywords must be a string or an array of strings: %w", err)
	}
	// a term with an embedded comma would not survive the storage form
	var split []string
	for _, term := range terms {
		split = append(split, strings.Split(term, keywordSeparator)...)
	}
	*k = cleanKeywords(split)
	return nil
}

func cleanKeywords(terms []string) Keywords {
	out := make(Keywords, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
