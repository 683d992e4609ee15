package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func (r *userRepository) CreateWithProfileTx(ctx context.Context, params ports.CreateUserParams, outboxEvent ports.OutboxEvent) (domain.User, error) {
	var result domain.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := userModel{
			Name:              params.Name,
			Email:             params.Email,
			PasswordHash:      params.PasswordHash,
			StudentID:         params.StudentID,
			StudentIDDocument: params.StudentIDDocument,
			Role:              string(params.Role),
			Status:            string(params.Status),
			CreatedAt:         params.RegisteredAt,
			UpdatedAt:         params.RegisteredAt,
		}
		if err := tx.Create(&rec).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return err
		}

		profile := profileModel{
			UserID:     rec.UserID,
			Username:   params.Username,
			Interests:  "[]",
			Contact:    "{}",
			Visibility: string(domain.VisibilityPublic),
			CreatedAt:  params.RegisteredAt,
			UpdatedAt:  params.RegisteredAt,
		}
		if err := tx.Create(&profile).Error; err != nil {
			if isUniqueViolation(err) {
				return domain.ErrConflict
			}
			return err
		}

		outbox := outboxModel{
			OutboxID:     outboxEvent.EventID,
			EventType:    outboxEvent.EventType,
			PartitionKey: rec.UserID.String(),
			Payload:      string(outboxEvent.Payload),
			CreatedAt:    outboxEvent.OccurredAt,
			FirstSeenAt:  outboxEvent.OccurredAt,
		}
		if err := tx.Create(&outbox).Error; err != nil {
			return err
		}

		result = toDomainUser(rec)
		return nil
	})
	if err != nil {
		return domain.User{}, err
	}
	return result, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	var rec userModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.ErrNotFound
		}
		return domain.User{}, err
	}
	return toDomainUser(rec), nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, status domain.AccountStatus, updatedAt time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&userModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]any{
			"status":     string(status),
			"updated_at": updatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListByStatus(ctx context.Context, status domain.AccountStatus, limit, offset int) ([]domain.User, error) {
	var recs []userModel
	err := r.db.WithContext(ctx).
		Where("role = ? AND status = ?", string(domain.RoleStudent), string(status)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(recs), nil
}

func (r *userRepository) ListStudents(ctx context.Context, limit, offset int) ([]domain.User, error) {
	var recs []userModel
	err := r.db.WithContext(ctx).
		Where("role = ?", string(domain.RoleStudent)).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return toDomainUsers(recs), nil
}

func (r *userRepository) CountStats(ctx context.Context) (domain.DashboardStats, error) {
	var stats domain.DashboardStats
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&userModel{}).Where("role = ?", string(domain.RoleStudent))
	}
	if err := base().Count(&stats.TotalStudents).Error; err != nil {
		return domain.DashboardStats{}, err
	}
	if err := base().Where("status = ?", string(domain.AccountStatusPending)).Count(&stats.Pending).Error; err != nil {
		return domain.DashboardStats{}, err
	}
	if err := base().Where("status = ?", string(domain.AccountStatusApproved)).Count(&stats.Approved).Error; err != nil {
		return domain.DashboardStats{}, err
	}
	if err := base().Where("status = ?", string(domain.AccountStatusRejected)).Count(&stats.Rejected).Error; err != nil {
		return domain.DashboardStats{}, err
	}
	return stats, nil
}

func (r *userRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	// Profiles, skills, and projects cascade via foreign keys.
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&userModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func toDomainUsers(recs []userModel) []domain.User {
	out := make([]domain.User, 0, len(recs))
	for _, rec := range recs {
		out = append(out, toDomainUser(rec))
	}
	return out
}
