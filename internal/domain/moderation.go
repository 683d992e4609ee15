package domain

import (
	"regexp"
	"strings"
)

// ModerationResult reports the banned terms found in a single piece of text.
// Terms appear in the order the banned set stores them.
type ModerationResult struct {
	MatchedTerms []string
}

func (r ModerationResult) IsClean() bool {
	return len(r.MatchedTerms) == 0
}

// NormalizeTerm is applied before a term is stored or compared, so the set
// never holds two spellings of the same word.
func NormalizeTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// MatchBannedTerms scans text against the given terms with whole-word,
// case-insensitive matching: a term counts only when bounded by non-word
// characters or the string edges, so "drugs" does not match inside
// "drugstore". Each term is tested at most once, so the result carries no
// duplicates. Empty text is always clean.
func MatchBannedTerms(text string, terms []string) ModerationResult {
	if text == "" || len(terms) == 0 {
		return ModerationResult{}
	}
	lowered := strings.ToLower(text)
	var matched []string
	for _, term := range terms {
		term = NormalizeTerm(term)
		if term == "" {
			continue
		}
		if wholeWordPattern(term).MatchString(lowered) {
			matched = append(matched, term)
		}
	}
	return ModerationResult{MatchedTerms: matched}
}

// The set is small and read live on every check, so compiling per call stays
// cheap relative to the storage round trip that precedes it.
func wholeWordPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(term) + `\b`)
}
