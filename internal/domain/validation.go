package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

var (
	namePattern      = regexp.MustCompile(`^[\p{L}0-9 .'-]{2,80}$`)
	studentIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{3,30}$`)
	usernamePattern  = regexp.MustCompile(`^[a-z0-9-]{2,80}$`)
	nonWordRun       = regexp.MustCompile(`[^a-z0-9-]+`)
	dashRun          = regexp.MustCompile(`-{2,}`)
)

func ValidateName(v string) error {
	if !namePattern.MatchString(strings.TrimSpace(v)) {
		return fmt.Errorf("%w: name must be 2-80 chars of letters, digits, spaces, dots, hyphens", ErrInvalidInput)
	}
	return nil
}

// ValidateUniversityEmail checks shape and the configured campus domain.
func ValidateUniversityEmail(v, requiredDomain string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if requiredDomain != "" && !strings.HasSuffix(strings.ToLower(addr.Address), "@"+strings.ToLower(requiredDomain)) {
		return fmt.Errorf("%w: must use university email (@%s)", ErrInvalidInput, requiredDomain)
	}
	return nil
}

func ValidatePassword(v string) error {
	if len(v) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	return nil
}

func ValidateStudentID(v string) error {
	if !studentIDPattern.MatchString(strings.TrimSpace(v)) {
		return fmt.Errorf("%w: student id must be 3-30 chars of letters, digits, hyphens", ErrInvalidInput)
	}
	return nil
}

func ValidateUsername(v string) error {
	if !usernamePattern.MatchString(v) {
		return fmt.Errorf("%w: username must match ^[a-z0-9-]{2,80}$", ErrInvalidInput)
	}
	return nil
}

func ValidateBio(v string) error {
	if len(v) > 500 {
		return fmt.Errorf("%w: bio must be <= 500 chars", ErrInvalidInput)
	}
	return nil
}

func ValidateSkillLevel(level int) error {
	if level < 0 || level > 100 {
		return fmt.Errorf("%w: skill level must be between 0 and 100", ErrInvalidInput)
	}
	return nil
}

func ValidateVisibility(v Visibility) error {
	switch v {
	case VisibilityPublic, VisibilityUniversity, VisibilityPrivate:
		return nil
	default:
		return fmt.Errorf("%w: visibility must be public, university, or private", ErrInvalidInput)
	}
}

// SlugifyName derives the directory username from a student's name:
// "Jane O'Neil" -> "jane-oneil".
func SlugifyName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, "'", "")
	slug = nonWordRun.ReplaceAllString(slug, "-")
	slug = dashRun.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
