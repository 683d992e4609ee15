package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/studenthub/directory-service/internal/domain"
	"github.com/studenthub/directory-service/internal/ports"
	"gorm.io/gorm"
)

type projectRepository struct {
	db *gorm.DB
}

func (r *projectRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Project, error) {
	var recs []projectModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	projects := make([]domain.Project, 0, len(recs))
	for _, rec := range recs {
		projects = append(projects, toDomainProject(rec))
	}
	return projects, nil
}

func (r *projectRepository) Create(ctx context.Context, params ports.AddProjectParams) (domain.Project, error) {
	rec := projectModel{
		UserID:      params.UserID,
		Name:        params.Name,
		Description: params.Description,
		GitHubLink:  params.GitHubLink,
		LiveLink:    params.LiveLink,
		AddedAt:     params.AddedAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.Project{}, err
	}
	return toDomainProject(rec), nil
}
