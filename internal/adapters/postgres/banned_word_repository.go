package postgres

import (
	"context"
	"time"

	"github.com/studenthub/directory-service/internal/domain"
	"gorm.io/gorm"
)

type bannedWordRepository struct {
	db *gorm.DB
}

// ListAll returns terms oldest first so match reporting follows the order
// terms were added. The serial seq column breaks ties for rows inserted in
// the same statement.
func (r *bannedWordRepository) ListAll(ctx context.Context) ([]domain.BannedWord, error) {
	var recs []bannedWordModel
	err := r.db.WithContext(ctx).
		Order("seq ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	words := make([]domain.BannedWord, 0, len(recs))
	for _, rec := range recs {
		words = append(words, toDomainBannedWord(rec))
	}
	return words, nil
}

func (r *bannedWordRepository) Insert(ctx context.Context, term string, createdAt time.Time) (domain.BannedWord, error) {
	rec := bannedWordModel{
		Term:      term,
		CreatedAt: createdAt,
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.BannedWord{}, domain.ErrTermExists
		}
		return domain.BannedWord{}, err
	}
	return toDomainBannedWord(rec), nil
}

func (r *bannedWordRepository) DeleteByTerm(ctx context.Context, term string) error {
	res := r.db.WithContext(ctx).Where("term = ?", term).Delete(&bannedWordModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTermNotFound
	}
	return nil
}
