package application

import (
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
)

type RegisterRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	StudentID string `json:"student_id"`
}

// UploadedFile carries one multipart file from the HTTP adapter.
type UploadedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

type RegisterResponse struct {
	UserID   uuid.UUID            `json:"user_id"`
	Username string               `json:"username"`
	Status   domain.AccountStatus `json:"status"`
	Message  string               `json:"message"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	UserID    uuid.UUID   `json:"user_id"`
	Role      domain.Role `json:"role"`
}

type UpdateProfileRequest struct {
	Bio        *string             `json:"bio"`
	Interests  *[]string           `json:"interests"`
	Contact    *domain.ContactInfo `json:"contact"`
	Visibility *domain.Visibility  `json:"visibility"`
}

type AddSkillRequest struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type AddProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	GitHubLink  string `json:"github_link"`
	LiveLink    string `json:"live_link"`
}

type SkillView struct {
	Name    string    `json:"name"`
	Level   int       `json:"level"`
	AddedAt time.Time `json:"added_at"`
}

type ProjectView struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	GitHubLink  string    `json:"github_link,omitempty"`
	LiveLink    string    `json:"live_link,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}

// ProfileResponse is the owner's (or admin's) full view of a profile.
type ProfileResponse struct {
	UserID          uuid.UUID          `json:"user_id"`
	Username        string             `json:"username"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Bio             string             `json:"bio"`
	Interests       []string           `json:"interests"`
	Contact         domain.ContactInfo `json:"contact"`
	PhotoURL        string             `json:"photo_url,omitempty"`
	Visibility      domain.Visibility  `json:"visibility"`
	FlaggedAttempts int                `json:"flagged_attempts"`
	Skills          []SkillView        `json:"skills"`
	Projects        []ProjectView      `json:"projects"`
	MemberSince     time.Time          `json:"member_since"`
}

// PublicProfileResponse is what a permitted non-owner viewer sees.
type PublicProfileResponse struct {
	Username    string             `json:"username"`
	Name        string             `json:"name"`
	Bio         string             `json:"bio"`
	Interests   []string           `json:"interests"`
	Contact     domain.ContactInfo `json:"contact"`
	PhotoURL    string             `json:"photo_url,omitempty"`
	Skills      []SkillView        `json:"skills"`
	Projects    []ProjectView      `json:"projects"`
	MemberSince time.Time          `json:"member_since"`
	IsOwner     bool               `json:"is_owner"`
}

// ModerationRejection names the first field that failed moderation; the
// message is the user-facing form the edit screen re-displays.
type ModerationRejection struct {
	Field        string   `json:"field"`
	MatchedTerms []string `json:"matched_terms"`
	Message      string   `json:"message"`
}

// UpdateProfileResult carries either the updated profile or the moderation
// rejection; content rejection is a normal outcome, not an error.
type UpdateProfileResult struct {
	Profile   *ProfileResponse     `json:"profile,omitempty"`
	Rejection *ModerationRejection `json:"rejection,omitempty"`
}

type AddProjectResult struct {
	Project   *ProjectView         `json:"project,omitempty"`
	Rejection *ModerationRejection `json:"rejection,omitempty"`
}

type DirectoryEntryView struct {
	Username   string            `json:"username"`
	Name       string            `json:"name"`
	Bio        string            `json:"bio"`
	PhotoURL   string            `json:"photo_url,omitempty"`
	Visibility domain.Visibility `json:"visibility"`
}

type BannedWordView struct {
	Term      string    `json:"term"`
	CreatedAt time.Time `json:"created_at"`
}

type StudentSummary struct {
	UserID    uuid.UUID            `json:"user_id"`
	Name      string               `json:"name"`
	Email     string               `json:"email"`
	StudentID string               `json:"student_id"`
	Status    domain.AccountStatus `json:"status"`
	JoinedAt  time.Time            `json:"joined_at"`
}

type FlaggedStudentView struct {
	UserID          uuid.UUID `json:"user_id"`
	Username        string    `json:"username"`
	Name            string    `json:"name"`
	FlaggedAttempts int       `json:"flagged_attempts"`
}

type DashboardResponse struct {
	TotalStudents int64                `json:"total_students"`
	Pending       int64                `json:"pending"`
	Approved      int64                `json:"approved"`
	Rejected      int64                `json:"rejected"`
	TopFlagged    []FlaggedStudentView `json:"top_flagged"`
}
