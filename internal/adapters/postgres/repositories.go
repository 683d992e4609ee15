package postgres

import (
	"github.com/studenthub/directory-service/internal/ports"
	"gorm.io/gorm"
)

type Repositories struct {
	Users       ports.UserRepository
	Profiles    ports.ProfileRepository
	Skills      ports.SkillRepository
	Projects    ports.ProjectRepository
	BannedWords ports.BannedWordRepository
	Outbox      ports.OutboxRepository
	Idempotency ports.IdempotencyRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:       &userRepository{db: db},
		Profiles:    &profileRepository{db: db},
		Skills:      &skillRepository{db: db},
		Projects:    &projectRepository{db: db},
		BannedWords: &bannedWordRepository{db: db},
		Outbox:      &outboxRepository{db: db},
		Idempotency: &idempotencyRepository{db: db},
	}
}
