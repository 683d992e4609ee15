package domain

import (
	"errors"
	"testing"
)

func TestValidateUniversityEmail(t *testing.T) {
	t.Parallel()

	if err := ValidateUniversityEmail("jane.doe@university.edu", "university.edu"); err != nil {
		t.Fatalf("valid campus email rejected: %v", err)
	}
	if err := ValidateUniversityEmail("jane@gmail.com", "university.edu"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("off-campus email should fail, got %v", err)
	}
	if err := ValidateUniversityEmail("not-an-email", "university.edu"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("malformed email should fail, got %v", err)
	}
	// No configured domain accepts any well-formed address.
	if err := ValidateUniversityEmail("jane@gmail.com", ""); err != nil {
		t.Fatalf("unconfigured domain should accept any address: %v", err)
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	if err := ValidatePassword("12345"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("five chars should fail, got %v", err)
	}
	if err := ValidatePassword("123456"); err != nil {
		t.Fatalf("six chars should pass: %v", err)
	}
}

func TestValidateStudentID(t *testing.T) {
	t.Parallel()

	if err := ValidateStudentID("STU-2024-001"); err != nil {
		t.Fatalf("valid student id rejected: %v", err)
	}
	if err := ValidateStudentID("x"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("too-short id should fail, got %v", err)
	}
	if err := ValidateStudentID("has spaces"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("spaces should fail, got %v", err)
	}
}

func TestValidateSkillLevel(t *testing.T) {
	t.Parallel()

	for _, level := range []int{0, 50, 100} {
		if err := ValidateSkillLevel(level); err != nil {
			t.Fatalf("level %d should pass: %v", level, err)
		}
	}
	for _, level := range []int{-1, 101} {
		if err := ValidateSkillLevel(level); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("level %d should fail, got %v", level, err)
		}
	}
}

func TestValidateVisibility(t *testing.T) {
	t.Parallel()

	for _, v := range []Visibility{VisibilityPublic, VisibilityUniversity, VisibilityPrivate} {
		if err := ValidateVisibility(v); err != nil {
			t.Fatalf("visibility %q should pass: %v", v, err)
		}
	}
	if err := ValidateVisibility(Visibility("friends")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unknown visibility should fail, got %v", err)
	}
}

func TestSlugifyName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Jane Doe":       "jane-doe",
		"Jane O'Neil":    "jane-oneil",
		"  Mia   Wong  ": "mia-wong",
		"A--B":           "a-b",
	}
	for in, want := range cases {
		if got := SlugifyName(in); got != want {
			t.Fatalf("SlugifyName(%q) = %q, want %q", in, got, want)
		}
	}
}
