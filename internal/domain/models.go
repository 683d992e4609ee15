package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
	AccountStatusRejected AccountStatus = "rejected"
)

type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityUniversity Visibility = "university"
	VisibilityPrivate    Visibility = "private"
)

type User struct {
	UserID            uuid.UUID
	Name              string
	Email             string
	PasswordHash      string
	StudentID         string
	StudentIDDocument string
	Role              Role
	Status            AccountStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Profile is the student-maintained directory entry, kept separate from the
// account record so approval state and credentials stay out of directory reads.
type Profile struct {
	ProfileID       uuid.UUID
	UserID          uuid.UUID
	Username        string
	Bio             string
	Interests       []string
	Contact         ContactInfo
	PhotoURL        string
	Visibility      Visibility
	FlaggedAttempts int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type ContactInfo struct {
	Phone     string `json:"phone,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
}

type Skill struct {
	SkillID uuid.UUID
	UserID  uuid.UUID
	Name    string
	Level   int
	AddedAt time.Time
}

type Project struct {
	ProjectID   uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	GitHubLink  string
	LiveLink    string
	AddedAt     time.Time
}

type BannedWord struct {
	BannedWordID uuid.UUID
	Term         string
	CreatedAt    time.Time
}

// DashboardStats is the admin landing summary.
type DashboardStats struct {
	TotalStudents int64
	Pending       int64
	Approved      int64
	Rejected      int64
}
