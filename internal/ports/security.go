package ports

import (
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

type SessionClaims struct {
	UserID    uuid.UUID
	Name      string
	Role      domain.Role
	SessionID uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenSigner interface {
	Sign(claims SessionClaims) (string, error)
	ParseAndValidate(token string) (SessionClaims, error)
}
