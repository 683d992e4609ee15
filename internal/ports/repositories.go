package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
)

// CreateUserParams captures atomic registration inputs. User and profile are
// created in one transaction together with the registration outbox event so
// account state and integration signal cannot diverge.
type CreateUserParams struct {
	Name              string
	Email             string
	PasswordHash      string
	StudentID         string
	StudentIDDocument string
	Role              domain.Role
	Status            domain.AccountStatus
	Username          string
	RegisteredAt      time.Time
}

type UserRepository interface {
	CreateWithProfileTx(ctx context.Context, params CreateUserParams, outboxEvent OutboxEvent) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, status domain.AccountStatus, updatedAt time.Time) error
	ListByStatus(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]domain.User, error)
	ListStudents(ctx context.Context, limit, offset int) ([]domain.User, error)
	CountStats(ctx context.Context) (domain.DashboardStats, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

type UpdateProfileParams struct {
	UserID     uuid.UUID
	Bio        *string
	Interests  []string
	Contact    *domain.ContactInfo
	Visibility *domain.Visibility
	PhotoURL   *string
	UpdatedAt  time.Time
}

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error)
	GetByUsername(ctx context.Context, username string) (domain.Profile, error)
	Update(ctx context.Context, params UpdateProfileParams) (domain.Profile, error)
	// IncrementFlaggedAttempts adds delta to the moderation-rejection counter
	// as a single atomic update; the counter only ever grows.
	IncrementFlaggedAttempts(ctx context.Context, userID uuid.UUID, delta int) error
	// ListDirectory returns approved students' entries restricted to the
	// given visibilities; includeOwner is always listed regardless.
	ListDirectory(ctx context.Context, visibilities []domain.Visibility, includeOwner *uuid.UUID, limit, offset int) ([]DirectoryEntry, error)
	ListTopFlagged(ctx context.Context, limit int) ([]FlaggedStudent, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}

// DirectoryEntry is the profile joined with the owning account's name, the
// shape the directory listing renders.
type DirectoryEntry struct {
	UserID     uuid.UUID
	Username   string
	Name       string
	Bio        string
	PhotoURL   string
	Visibility domain.Visibility
}

type FlaggedStudent struct {
	UserID          uuid.UUID
	Username        string
	Name            string
	FlaggedAttempts int
}

type AddSkillParams struct {
	UserID  uuid.UUID
	Name    string
	Level   int
	AddedAt time.Time
}

type SkillRepository interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Skill, error)
	Create(ctx context.Context, params AddSkillParams) (domain.Skill, error)
}

type AddProjectParams struct {
	UserID      uuid.UUID
	Name        string
	Description string
	GitHubLink  string
	LiveLink    string
	AddedAt     time.Time
}

type ProjectRepository interface {
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Project, error)
	Create(ctx context.Context, params AddProjectParams) (domain.Project, error)
}

// BannedWordRepository backs the moderation engine. ListAll must return terms
// in insertion order and is called fresh on every check rather than cached,
// so an admin add or remove is visible to the next check immediately.
type BannedWordRepository interface {
	ListAll(ctx context.Context) ([]domain.BannedWord, error)
	Insert(ctx context.Context, term string, createdAt time.Time) (domain.BannedWord, error)
	DeleteByTerm(ctx context.Context, term string) error
}

type OutboxEvent struct {
	EventID      uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	OccurredAt   time.Time
}

type OutboxRecord struct {
	OutboxID     uuid.UUID
	EventType    string
	PartitionKey string
	Payload      []byte
	RetryCount   int
	PublishedAt  *time.Time
	LastError    *string
	LastErrorAt  *time.Time
	FirstSeenAt  time.Time
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, event OutboxEvent) error
	FetchUnpublished(ctx context.Context, limit int) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, outboxID uuid.UUID, at time.Time) error
	MarkFailed(ctx context.Context, outboxID uuid.UUID, errMsg string, at time.Time) error
}

type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	Status       string
	ResponseCode int
	ResponseBody []byte
	ExpiresAt    time.Time
}

type IdempotencyRepository interface {
	Get(ctx context.Context, key string) (*IdempotencyRecord, error)
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
	Complete(ctx context.Context, key string, responseCode int, responseBody []byte, at time.Time) error
}
