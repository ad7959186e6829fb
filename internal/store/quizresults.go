package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// ReplaceQuizResult records an account's quiz standing, atomically
// superseding any previous one. A single upsert keyed on account_id stands
// in for delete-then-insert, so two racing submissions can never both
// survive as rows.
func (s *Store) ReplaceQuizResult(ctx context.Context, res *models.QuizResult) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "account_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score", "total", "created_at", "updated_at",
			}),
		}).
		Create(res).Error
}

// QuizResultByAccount returns the account's single current result, or
// ErrNotFound when it has not submitted yet.
func (s *Store) QuizResultByAccount(ctx context.Context, accountID uint) (*models.QuizResult, error) {
	var res models.QuizResult
	err := s.db.WithContext(ctx).Where("account_id = ?", accountID).First(&res).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: quiz result for account %d", models.ErrNotFound, accountID)
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}
