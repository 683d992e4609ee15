package application

import (
	"time"

	"github.com/studenthub/directory-service/internal/ports"
)

type Config struct {
	ServiceName           string
	UniversityEmailDomain string
	TokenTTL              time.Duration
	IdempotencyTTL        time.Duration
	ProfileCacheTTL       time.Duration
	DirectoryPageSize     int
	MaxDocumentBytes      int64
	MaxPhotoBytes         int64
}

type Service struct {
	cfg         Config
	users       ports.UserRepository
	profiles    ports.ProfileRepository
	skills      ports.SkillRepository
	projects    ports.ProjectRepository
	bannedWords ports.BannedWordRepository
	outbox      ports.OutboxRepository
	idempotency ports.IdempotencyRepository
	cache       ports.Cache
	revocations ports.SessionRevocationStore
	files       ports.FileStore
	hasher      ports.PasswordHasher
	tokenSigner ports.TokenSigner
	nowFn       func() time.Time
}

type Dependencies struct {
	Config      Config
	Users       ports.UserRepository
	Profiles    ports.ProfileRepository
	Skills      ports.SkillRepository
	Projects    ports.ProjectRepository
	BannedWords ports.BannedWordRepository
	Outbox      ports.OutboxRepository
	Idempotency ports.IdempotencyRepository
	Cache       ports.Cache
	Revocations ports.SessionRevocationStore
	Files       ports.FileStore
	Hasher      ports.PasswordHasher
	TokenSigner ports.TokenSigner
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "student-directory-service"
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 7 * 24 * time.Hour
	}
	if cfg.ProfileCacheTTL <= 0 {
		cfg.ProfileCacheTTL = 5 * time.Minute
	}
	if cfg.DirectoryPageSize <= 0 {
		cfg.DirectoryPageSize = 50
	}
	if cfg.MaxDocumentBytes <= 0 {
		cfg.MaxDocumentBytes = 5 * 1024 * 1024
	}
	if cfg.MaxPhotoBytes <= 0 {
		cfg.MaxPhotoBytes = 2 * 1024 * 1024
	}

	return &Service{
		cfg:         cfg,
		users:       deps.Users,
		profiles:    deps.Profiles,
		skills:      deps.Skills,
		projects:    deps.Projects,
		bannedWords: deps.BannedWords,
		outbox:      deps.Outbox,
		idempotency: deps.Idempotency,
		cache:       deps.Cache,
		revocations: deps.Revocations,
		files:       deps.Files,
		hasher:      deps.Hasher,
		tokenSigner: deps.TokenSigner,
		nowFn:       func() time.Time { return time.Now().UTC() },
	}
}
