package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
	"gorm.io/gorm"
)

type profileRepository struct {
	db *gorm.DB
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (domain.Profile, error) {
	var rec profileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	return toDomainProfile(rec), nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (domain.Profile, error) {
	var rec profileModel
	if err := r.db.WithContext(ctx).Where("username = ?", username).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Profile{}, domain.ErrNotFound
		}
		return domain.Profile{}, err
	}
	return toDomainProfile(rec), nil
}

func (r *profileRepository) Update(ctx context.Context, params ports.UpdateProfileParams) (domain.Profile, error) {
	updates := map[string]any{"updated_at": params.UpdatedAt}
	if params.Bio != nil {
		updates["bio"] = *params.Bio
	}
	if params.Interests != nil {
		updates["interests"] = marshalJSONColumn(params.Interests)
	}
	if params.Contact != nil {
		updates["contact"] = marshalJSONColumn(*params.Contact)
	}
	if params.Visibility != nil {
		updates["visibility"] = string(*params.Visibility)
	}
	if params.PhotoURL != nil {
		updates["photo_url"] = *params.PhotoURL
	}

	res := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("user_id = ?", params.UserID).
		Updates(updates)
	if res.Error != nil {
		return domain.Profile{}, res.Error
	}
	if res.RowsAffected == 0 {
		return domain.Profile{}, domain.ErrNotFound
	}
	return r.GetByUserID(ctx, params.UserID)
}

func (r *profileRepository) IncrementFlaggedAttempts(ctx context.Context, userID uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("user_id = ?", userID).
		UpdateColumn("flagged_attempts", gorm.Expr("flagged_attempts + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepository) ListDirectory(ctx context.Context, visibilities []domain.Visibility, includeOwner *uuid.UUID, limit, offset int) ([]ports.DirectoryEntry, error) {
	type row struct {
		UserID     uuid.UUID
		Username   string
		Name       string
		Bio        string
		PhotoURL   string
		Visibility string
	}

	values := make([]string, 0, len(visibilities))
	for _, v := range visibilities {
		values = append(values, string(v))
	}

	query := r.db.WithContext(ctx).
		Table("profiles").
		Select("profiles.user_id, profiles.username, users.name, profiles.bio, profiles.photo_url, profiles.visibility").
		Joins("JOIN users ON users.user_id = profiles.user_id").
		Where("users.role = ? AND users.status = ?", string(domain.RoleStudent), string(domain.AccountStatusApproved))

	if includeOwner != nil {
		query = query.Where("profiles.visibility IN ? OR profiles.user_id = ?", values, *includeOwner)
	} else {
		query = query.Where("profiles.visibility IN ?", values)
	}

	var rows []row
	err := query.Order("users.name ASC").Limit(limit).Offset(offset).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	entries := make([]ports.DirectoryEntry, 0, len(rows))
	for _, rec := range rows {
		entries = append(entries, ports.DirectoryEntry{
			UserID:     rec.UserID,
			Username:   rec.Username,
			Name:       rec.Name,
			Bio:        rec.Bio,
			PhotoURL:   rec.PhotoURL,
			Visibility: domain.Visibility(rec.Visibility),
		})
	}
	return entries, nil
}

func (r *profileRepository) ListTopFlagged(ctx context.Context, limit int) ([]ports.FlaggedStudent, error) {
	type row struct {
		UserID          uuid.UUID
		Username        string
		Name            string
		FlaggedAttempts int
	}

	var rows []row
	err := r.db.WithContext(ctx).
		Table("profiles").
		Select("profiles.user_id, profiles.username, users.name, profiles.flagged_attempts").
		Joins("JOIN users ON users.user_id = profiles.user_id").
		Where("profiles.flagged_attempts > 0").
		Order("profiles.flagged_attempts DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	flagged := make([]ports.FlaggedStudent, 0, len(rows))
	for _, rec := range rows {
		flagged = append(flagged, ports.FlaggedStudent{
			UserID:          rec.UserID,
			Username:        rec.Username,
			Name:            rec.Name,
			FlaggedAttempts: rec.FlaggedAttempts,
		})
	}
	return flagged, nil
}

func (r *profileRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&profileModel{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
