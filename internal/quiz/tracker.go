// Package quiz tracks each account's single current quiz standing. There
// is no gradebook: a new submission replaces the old one.
package quiz

import (
	"context"
	"errors"
	"fmt"

	"github.com/falynantenaina87-blip/Mandarin-connect/internal/store"
	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// Tracker is a one-row-per-account projection over quiz results.
type Tracker struct {
	store *store.Store
}

func NewTracker(st *store.Store) *Tracker {
	return &Tracker{store: st}
}

// Submit records a result for the account, atomically superseding any
// previous one. score must lie within [0, total].
func (t *Tracker) Submit(ctx context.Context, accountID uint, score, total int) (*models.QuizResult, error) {
	if total <= 0 || score < 0 || score > total {
		return nil, fmt.Errorf("%w: score %d/%d is out of range", models.ErrValidation, score, total)
	}

	res := models.QuizResult{AccountID: accountID, Score: score, Total: total}
	if err := t.store.ReplaceQuizResult(ctx, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CheckSubmission returns the account's current result, or nil when it
// has not submitted yet. No side effects.
func (t *Tracker) CheckSubmission(ctx context.Context, accountID uint) (*models.QuizResult, error) {
	res, err := t.store.QuizResultByAccount(ctx, accountID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
