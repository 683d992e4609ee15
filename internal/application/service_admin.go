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

func (s *Service) Dashboard(ctx context.Context) (DashboardResponse, error) {
	stats, err := s.users.CountStats(ctx)
	if err != nil {
		return DashboardResponse{}, err
	}
	flagged, err := s.profiles.ListTopFlagged(ctx, 10)
	if err != nil {
		return DashboardResponse{}, err
	}
	views := make([]FlaggedStudentView, 0, len(flagged))
	for _, f := range flagged {
		views = append(views, FlaggedStudentView{
			UserID:          f.UserID,
			Username:        f.Username,
			Name:            f.Name,
			FlaggedAttempts: f.FlaggedAttempts,
		})
	}
	return DashboardResponse{
		TotalStudents: stats.TotalStudents,
		Pending:       stats.Pending,
		Approved:      stats.Approved,
		Rejected:      stats.Rejected,
		TopFlagged:    views,
	}, nil
}

func (s *Service) ListPending(ctx context.Context, limit, offset int) ([]StudentSummary, error) {
	users, err := s.users.ListByStatus(ctx, domain.AccountStatusPending, normalizePage(limit), offset)
	if err != nil {
		return nil, err
	}
	return toStudentSummaries(users), nil
}

func (s *Service) ListStudents(ctx context.Context, limit, offset int) ([]StudentSummary, error) {
	users, err := s.users.ListStudents(ctx, normalizePage(limit), offset)
	if err != nil {
		return nil, err
	}
	return toStudentSummaries(users), nil
}

func (s *Service) ApproveStudent(ctx context.Context, userID uuid.UUID) error {
	return s.setStudentStatus(ctx, userID, domain.AccountStatusApproved, eventTypeUserApproved)
}

func (s *Service) RejectStudent(ctx context.Context, userID uuid.UUID) error {
	return s.setStudentStatus(ctx, userID, domain.AccountStatusRejected, eventTypeUserRejected)
}

func (s *Service) DeleteStudent(ctx context.Context, userID uuid.UUID) error {
	s.invalidateProfileCache(ctx, userID)
	return s.users.Delete(ctx, userID)
}

func (s *Service) setStudentStatus(ctx context.Context, userID uuid.UUID, status domain.AccountStatus, eventType string) error {
	if err := s.users.UpdateStatus(ctx, userID, status, s.nowFn()); err != nil {
		return err
	}
	s.enqueueEvent(ctx, eventType, userID, map[string]any{"status": status})
	s.invalidateProfileCache(ctx, userID)
	return nil
}

// EnsureAdminAccount creates the configured admin on first startup. An
// account that already exists, whatever its shape, is left untouched.
func (s *Service) EnsureAdminAccount(ctx context.Context, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	username, err := s.resolveUsername(ctx, name)
	if err != nil {
		return err
	}
	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := s.nowFn()
	payload, _ := json.Marshal(map[string]any{
		"event_type":    eventTypeUserRegistered,
		"email":         email,
		"username":      username,
		"role":          string(domain.RoleAdmin),
		"registered_at": now.Format(time.RFC3339),
	})
	_, err = s.users.CreateWithProfileTx(ctx, ports.CreateUserParams{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: passwordHash,
		StudentID:    "admin-" + username,
		Role:         domain.RoleAdmin,
		Status:       domain.AccountStatusApproved,
		Username:     username,
		RegisteredAt: now,
	}, ports.OutboxEvent{
		EventID:      uuid.New(),
		EventType:    eventTypeUserRegistered,
		PartitionKey: email,
		Payload:      payload,
		OccurredAt:   now,
	})
	if errors.Is(err, domain.ErrConflict) {
		return nil
	}
	return err
}

func normalizePage(limit int) int {
	if limit <= 0 || limit > 200 {
		return 50
	}
	return limit
}

func toStudentSummaries(users []domain.User) []StudentSummary {
	out := make([]StudentSummary, 0, len(users))
	for _, u := range users {
		out = append(out, StudentSummary{
			UserID:    u.UserID,
			Name:      u.Name,
			Email:     u.Email,
			StudentID: u.StudentID,
			Status:    u.Status,
			JoinedAt:  u.CreatedAt,
		})
	}
	return out
}
