package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/falynantenaina87-blip/Mandarin-connect/models"
)

// CreateAccount inserts a new account. Email uniqueness is enforced here:
// a duplicate yields ErrConflict. The created ID is written back into acc.
func (s *Store) CreateAccount(ctx context.Context, acc *models.Account) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Account
		err := tx.Where("email = ?", acc.Email).First(&existing).Error
		switch {
		case err == nil:
			return fmt.Errorf("%w: email already exists", models.ErrConflict)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		if err := tx.Create(acc).Error; err != nil {
			// The unique index catches the race two concurrent registrations
			// can produce despite the check above.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: email already exists", models.ErrConflict)
			}
			return err
		}
		return nil
	})
}

// AccountByEmail looks an account up by its indexed email (case-sensitive).
func (s *Store) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var acc models.Account
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account", models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// AccountByID is a point lookup.
func (s *Store) AccountByID(ctx context.Context, id uint) (*models.Account, error) {
	var acc models.Account
	err := s.db.WithContext(ctx).First(&acc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account %d", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// AccountsByID resolves a batch of ids in one query. Missing ids are
// simply absent from the map; the caller decides how to degrade.
func (s *Store) AccountsByID(ctx context.Context, ids []uint) (map[uint]models.Account, error) {
	out := make(map[uint]models.Account, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var accs []models.Account
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&accs).Error; err != nil {
		return nil, err
	}
	for _, a := range accs {
		out[a.ID] = a
	}
	return out, nil
}

// UpdateAccountRole sets the role of an existing account.
func (s *Store) UpdateAccountRole(ctx context.Context, id uint, role models.Role) error {
	res := s.db.WithContext(ctx).Model(&models.Account{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: account %d", models.ErrNotFound, id)
	}
	return nil
}
