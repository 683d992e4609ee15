package postgres

import (
	"time"

	"github.com/google/uuid"
)

type userModel struct {
	UserID            uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name              string    `gorm:"column:name"`
	Email             string    `gorm:"column:email"`
	PasswordHash      string    `gorm:"column:password_hash"`
	StudentID         string    `gorm:"column:student_id"`
	StudentIDDocument string    `gorm:"column:student_id_document"`
	Role              string    `gorm:"column:role"`
	Status            string    `gorm:"column:status"`
	CreatedAt         time.Time `gorm:"column:created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type profileModel struct {
	ProfileID       uuid.UUID `gorm:"column:profile_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID `gorm:"column:user_id"`
	Username        string    `gorm:"column:username"`
	Bio             string    `gorm:"column:bio"`
	Interests       string    `gorm:"column:interests;type:jsonb"`
	Contact         string    `gorm:"column:contact;type:jsonb"`
	PhotoURL        string    `gorm:"column:photo_url"`
	Visibility      string    `gorm:"column:visibility"`
	FlaggedAttempts int       `gorm:"column:flagged_attempts"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at"`
}

func (profileModel) TableName() string { return "profiles" }

type skillModel struct {
	SkillID uuid.UUID `gorm:"column:skill_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID  uuid.UUID `gorm:"column:user_id"`
	Name    string    `gorm:"column:name"`
	Level   int       `gorm:"column:level"`
	AddedAt time.Time `gorm:"column:added_at"`
}

func (skillModel) TableName() string { return "skills" }

type projectModel struct {
	ProjectID   uuid.UUID `gorm:"column:project_id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID `gorm:"column:user_id"`
	Name        string    `gorm:"column:name"`
	Description string    `gorm:"column:description"`
	GitHubLink  string    `gorm:"column:github_link"`
	LiveLink    string    `gorm:"column:live_link"`
	AddedAt     time.Time `gorm:"column:added_at"`
}

func (projectModel) TableName() string { return "projects" }

type bannedWordModel struct {
	BannedWordID uuid.UUID `gorm:"column:banned_word_id;type:uuid;default:gen_random_uuid();primaryKey"`
	Term         string    `gorm:"column:term"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (bannedWordModel) TableName() string { return "banned_words" }

type outboxModel struct {
	OutboxID     uuid.UUID  `gorm:"column:outbox_id;type:uuid;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      string     `gorm:"column:payload;type:jsonb"`
	RetryCount   int        `gorm:"column:retry_count"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	FirstSeenAt  time.Time  `gorm:"column:first_seen_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
	LastError    *string    `gorm:"column:last_error"`
	LastErrorAt  *time.Time `gorm:"column:last_error_at"`
}

func (outboxModel) TableName() string { return "directory_outbox" }

type idempotencyModel struct {
	IdempotencyKey string    `gorm:"column:idempotency_key;primaryKey"`
	RequestHash    string    `gorm:"column:request_hash"`
	Status         string    `gorm:"column:status"`
	ResponseCode   int       `gorm:"column:response_code"`
	ResponseBody   *string   `gorm:"column:response_body;type:jsonb"`
	ExpiresAt      time.Time `gorm:"column:expires_at"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (idempotencyModel) TableName() string { return "directory_idempotency" }
