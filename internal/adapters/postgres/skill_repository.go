package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
	"gorm.io/gorm"
)

type skillRepository struct {
	db *gorm.DB
}

func (r *skillRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Skill, error) {
	var recs []skillModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	skills := make([]domain.Skill, 0, len(recs))
	for _, rec := range recs {
		skills = append(skills, toDomainSkill(rec))
	}
	return skills, nil
}

func (r *skillRepository) Create(ctx context.Context, params ports.AddSkillParams) (domain.Skill, error) {
	rec := skillModel{
		UserID:  params.UserID,
		Name:    params.Name,
		Level:   params.Level,
		AddedAt: params.AddedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Skill{}, err
	}
	return toDomainSkill(rec), nil
}
