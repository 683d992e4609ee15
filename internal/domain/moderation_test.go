package domain

import (
	"reflect"
	"testing"
)

func TestMatchBannedTermsWholeWord(t *testing.T) {
	t.Parallel()

	terms := []string{"drugs", "scam"}

	if got := MatchBannedTerms("the local drugstore is open", terms); !got.IsClean() {
		t.Fatalf("substring should not match, got %v", got.MatchedTerms)
	}
	if got := MatchBannedTerms("no drugs here", terms); got.IsClean() {
		t.Fatalf("expected whole-word match for drugs")
	}
	if got := MatchBannedTerms("drugs", terms); got.IsClean() {
		t.Fatalf("expected match at string edges")
	}
	if got := MatchBannedTerms("Drugs, obviously!", terms); got.IsClean() {
		t.Fatalf("expected punctuation-bounded match")
	}
}

func TestMatchBannedTermsCaseInsensitive(t *testing.T) {
	t.Parallel()

	got := MatchBannedTerms("this is a SCAM", []string{"scam"})
	if !reflect.DeepEqual(got.MatchedTerms, []string{"scam"}) {
		t.Fatalf("expected [scam], got %v", got.MatchedTerms)
	}
}

func TestMatchBannedTermsReportsInSetOrder(t *testing.T) {
	t.Parallel()

	terms := []string{"violence", "drugs", "fraud"}
	got := MatchBannedTerms("fraud and drugs and violence", terms)
	if !reflect.DeepEqual(got.MatchedTerms, []string{"violence", "drugs", "fraud"}) {
		t.Fatalf("matches should follow set order, got %v", got.MatchedTerms)
	}
}

func TestMatchBannedTermsNoDuplicates(t *testing.T) {
	t.Parallel()

	got := MatchBannedTerms("drugs drugs drugs", []string{"drugs"})
	if len(got.MatchedTerms) != 1 {
		t.Fatalf("each term should be reported once, got %v", got.MatchedTerms)
	}
}

func TestMatchBannedTermsEmptyInputs(t *testing.T) {
	t.Parallel()

	if got := MatchBannedTerms("", []string{"drugs"}); !got.IsClean() {
		t.Fatalf("empty text must be clean")
	}
	if got := MatchBannedTerms("anything goes", nil); !got.IsClean() {
		t.Fatalf("empty set must be clean")
	}
	if got := MatchBannedTerms("anything goes", []string{"", "  "}); !got.IsClean() {
		t.Fatalf("blank terms must be ignored")
	}
}

func TestNormalizeTerm(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"  Weapon  ": "weapon",
		"HATE":       "hate",
		"fraud":      "fraud",
		"  ":         "",
	}
	for in, want := range cases {
		if got := NormalizeTerm(in); got != want {
			t.Fatalf("NormalizeTerm(%q) = %q, want %q", in, got, want)
		}
	}
}
