package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
)

// TextField is one named free-text field submitted for moderation. Order in
// the slice is the order fields are checked.
type TextField struct {
	Name string
	Text string
}

// FieldViolation reports the first field that failed moderation.
type FieldViolation struct {
	Field        string
	MatchedTerms []string
}

// CheckText scans one piece of text against the banned-word set. The set is
// read fresh from storage on every call so concurrent admin edits take
// effect immediately; the match itself is pure.
func (s *Service) CheckText(ctx context.Context, text string) (domain.ModerationResult, error) {
	if strings.TrimSpace(text) == "" {
		return domain.ModerationResult{}, nil
	}
	words, err := s.bannedWords.ListAll(ctx)
	if err != nil {
		return domain.ModerationResult{}, fmt.Errorf("%w: list banned words: %v", domain.ErrStorageUnavailable, err)
	}
	terms := make([]string, 0, len(words))
	for _, w := range words {
		terms = append(terms, w.Term)
	}
	return domain.MatchBannedTerms(text, terms), nil
}

// CheckFields evaluates fields in their declared order and stops at the
// first one that is not clean. A failing invocation increments the
// submitting user's flagged-attempt counter exactly once, regardless of how
// many fields or terms were involved. A nil violation means every field was
// clean. Banned content is a normal outcome; only storage failures return an
// error.
func (s *Service) CheckFields(ctx context.Context, userID uuid.UUID, fields []TextField) (*FieldViolation, error) {
	for _, field := range fields {
		result, err := s.CheckText(ctx, field.Text)
		if err != nil {
			return nil, err
		}
		if result.IsClean() {
			continue
		}
		if err := s.profiles.IncrementFlaggedAttempts(ctx, userID, 1); err != nil {
			return nil, fmt.Errorf("%w: record flagged attempt: %v", domain.ErrStorageUnavailable, err)
		}
		s.enqueueEvent(ctx, eventTypeContentFlagged, userID, map[string]any{
			"field":         field.Name,
			"matched_terms": result.MatchedTerms,
		})
		return &FieldViolation{Field: field.Name, MatchedTerms: result.MatchedTerms}, nil
	}
	return nil, nil
}

func (s *Service) ListBannedWords(ctx context.Context) ([]BannedWordView, error) {
	words, err := s.bannedWords.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list banned words: %v", domain.ErrStorageUnavailable, err)
	}
	views := make([]BannedWordView, 0, len(words))
	for _, w := range words {
		views = append(views, BannedWordView{Term: w.Term, CreatedAt: w.CreatedAt})
	}
	return views, nil
}

// AddBannedTerm normalizes the term before insert; a term that normalizes to
// an existing entry yields ErrTermExists and leaves the set unchanged.
func (s *Service) AddBannedTerm(ctx context.Context, term string) (BannedWordView, error) {
	normalized := domain.NormalizeTerm(term)
	if normalized == "" {
		return BannedWordView{}, fmt.Errorf("%w: term is required", domain.ErrInvalidInput)
	}
	word, err := s.bannedWords.Insert(ctx, normalized, s.nowFn())
	if err != nil {
		return BannedWordView{}, err
	}
	return BannedWordView{Term: word.Term, CreatedAt: word.CreatedAt}, nil
}

func (s *Service) RemoveBannedTerm(ctx context.Context, term string) error {
	normalized := domain.NormalizeTerm(term)
	if normalized == "" {
		return fmt.Errorf("%w: term is required", domain.ErrInvalidInput)
	}
	return s.bannedWords.DeleteByTerm(ctx, normalized)
}

func rejectionMessage(field string, terms []string) string {
	label := strings.ToUpper(field[:1]) + field[1:]
	return fmt.Sprintf("%s content contains inappropriate words: %s", label, strings.Join(terms, ", "))
}

func newModerationRejection(v FieldViolation) *ModerationRejection {
	return &ModerationRejection{
		Field:        v.Field,
		MatchedTerms: v.MatchedTerms,
		Message:      rejectionMessage(v.Field, v.MatchedTerms),
	}
}
