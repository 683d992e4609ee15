package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
)

var allowedDocumentMIMEs = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
}

// Register creates a pending account with its directory profile and the
// registration outbox event in one transaction. The identity document is
// mandatory; approval happens later on the admin side.
func (s *Service) Register(ctx context.Context, req RegisterRequest, document UploadedFile, idempotencyKey string) (RegisterResponse, error) {
	if err := domain.ValidateName(req.Name); err != nil {
		return RegisterResponse{}, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := domain.ValidateUniversityEmail(email, s.cfg.UniversityEmailDomain); err != nil {
		return RegisterResponse{}, err
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		return RegisterResponse{}, err
	}
	if err := domain.ValidateStudentID(req.StudentID); err != nil {
		return RegisterResponse{}, err
	}
	if len(document.Data) == 0 {
		return RegisterResponse{}, fmt.Errorf("%w: student id document is required", domain.ErrInvalidInput)
	}
	ext, ok := allowedDocumentMIMEs[document.ContentType]
	if !ok {
		return RegisterResponse{}, fmt.Errorf("%w: only images and PDFs are allowed", domain.ErrInvalidInput)
	}
	if int64(len(document.Data)) > s.cfg.MaxDocumentBytes {
		return RegisterResponse{}, fmt.Errorf("%w: document exceeds %d bytes", domain.ErrInvalidInput, s.cfg.MaxDocumentBytes)
	}

	if err := s.reserveIdempotency(ctx, idempotencyKey, req); err != nil {
		return RegisterResponse{}, err
	}

	username, err := s.resolveUsername(ctx, req.Name)
	if err != nil {
		return RegisterResponse{}, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return RegisterResponse{}, fmt.Errorf("hash password: %w", err)
	}

	docPath, err := s.files.Save(ctx, "documents", "student-id-"+uuid.NewString()+ext, document.Data)
	if err != nil {
		return RegisterResponse{}, fmt.Errorf("%w: store document: %v", domain.ErrStorageUnavailable, err)
	}

	now := s.nowFn()
	payload, _ := json.Marshal(map[string]any{
		"event_type":    eventTypeUserRegistered,
		"email":         email,
		"username":      username,
		"registered_at": now.Format(time.RFC3339),
	})
	event := ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventTypeUserRegistered,
		PartitionKey: email,
		Payload:      payload,
		OccurredAt:   now,
	}
	user, err := s.users.CreateWithProfileTx(ctx, ports.CreateUserParams{
		Name:              strings.TrimSpace(req.Name),
		Email:             email,
		PasswordHash:      passwordHash,
		StudentID:         strings.TrimSpace(req.StudentID),
		StudentIDDocument: docPath,
		Role:              domain.RoleStudent,
		Status:            domain.AccountStatusPending,
		Username:          username,
		RegisteredAt:      now,
	}, event)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return RegisterResponse{}, fmt.Errorf("%w: email or student id already registered", domain.ErrConflict)
		}
		return RegisterResponse{}, err
	}

	resp := RegisterResponse{
		UserID:   user.UserID,
		Username: username,
		Status:   user.Status,
		Message:  "Registration successful! Please wait for admin approval.",
	}
	s.completeIdempotency(ctx, idempotencyKey, 201, resp)
	return resp, nil
}

// Login validates credentials and issues a revocable session token. Pending
// and rejected students are told their status; admins always pass the
// status check.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return LoginResponse{}, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResponse{}, domain.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}
	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return LoginResponse{}, domain.ErrInvalidCredentials
	}
	if user.Role != domain.RoleAdmin && user.Status != domain.AccountStatusApproved {
		return LoginResponse{}, fmt.Errorf("%w: your account is %s", domain.ErrAccountNotApproved, user.Status)
	}

	now := s.nowFn()
	claims := ports.SessionClaims{
		UserID:    user.UserID,
		Name:      user.Name,
		Role:      user.Role,
		SessionID: uuid.New(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.TokenTTL),
	}
	token, err := s.tokenSigner.Sign(claims)
	if err != nil {
		return LoginResponse{}, fmt.Errorf("sign session token: %w", err)
	}
	return LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.cfg.TokenTTL.Seconds()),
		UserID:    user.UserID,
		Role:      user.Role,
	}, nil
}

// Logout revokes the presented session until the token would have expired.
func (s *Service) Logout(ctx context.Context, rawToken string) error {
	claims, err := s.tokenSigner.ParseAndValidate(rawToken)
	if err != nil {
		return domain.ErrUnauthorized
	}
	return s.revocations.MarkRevoked(ctx, claims.SessionID.String(), claims.ExpiresAt)
}

// ValidateToken parses the session token and rejects revoked sessions.
func (s *Service) ValidateToken(ctx context.Context, rawToken string) (ports.SessionClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return ports.SessionClaims{}, domain.ErrUnauthorized
	}
	claims, err := s.tokenSigner.ParseAndValidate(rawToken)
	if err != nil {
		return ports.SessionClaims{}, domain.ErrUnauthorized
	}
	revoked, err := s.revocations.IsRevoked(ctx, claims.SessionID.String())
	if err != nil {
		return ports.SessionClaims{}, fmt.Errorf("%w: check revocation: %v", domain.ErrStorageUnavailable, err)
	}
	if revoked {
		return ports.SessionClaims{}, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *Service) resolveUsername(ctx context.Context, name string) (string, error) {
	base := domain.SlugifyName(name)
	if err := domain.ValidateUsername(base); err != nil {
		return "", err
	}
	taken, err := s.profiles.UsernameExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	// Same-name collisions get a short random suffix rather than failing
	// registration.
	return base + "-" + uuid.NewString()[:8], nil
}
