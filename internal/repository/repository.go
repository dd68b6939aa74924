package repository

import (
	"avtopark/vehicle-api/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repo implements the CRUD quintet for any model with a single-column
// primary key. The key column comes from the model's KeyColumn method,
// so there is no schema introspection at call time.
type Repo[T model.Keyed] struct {
	db  *gorm.DB
	key string
}

func New[T model.Keyed](db *gorm.DB) *Repo[T] {
	var m T
	return &Repo[T]{db: db, key: m.KeyColumn()}
}

// GetAll returns one page of records in primary-key order.
func (r *Repo[T]) GetAll(ctx context.Context, skip, limit int) ([]T, error) {
	var items []T

	err := r.db.WithContext(ctx).
		Order(r.key).
		Offset(skip).
		Limit(limit).
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// GetByID returns the record or nil when it doesn't exist.
func (r *Repo[T]) GetByID(ctx context.Context, id int) (*T, error) {
	var item T

	err := r.db.WithContext(ctx).
		Where(r.key+" = ?", id).
		First(&item).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &item, nil
}

// Create inserts the record and fills in the generated id. A breached
// unique constraint surfaces as ErrConflict.
func (r *Repo[T]) Create(ctx context.Context, item *T) error {
	err := r.db.WithContext(ctx).Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}

	return err
}

// Update applies the given columns and returns the refreshed record, or
// nil when it doesn't exist. Callers build the map from the non-nil
// fields of their patch body, so an omitted field is left unchanged and
// a field can never be set back to null through this path.
func (r *Repo[T]) Update(ctx context.Context, id int, fields map[string]any) (*T, error) {
	if len(fields) > 0 {
		var m T

		err := r.db.WithContext(ctx).
			Model(&m).
			Where(r.key+" = ?", id).
			Updates(fields).
			Error
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrConflict
			}
			return nil, err
		}
	}

	return r.GetByID(ctx, id)
}

// Delete removes the record, reporting whether it existed.
func (r *Repo[T]) Delete(ctx context.Context, id int) (bool, error) {
	var m T

	res := r.db.WithContext(ctx).
		Where(r.key+" = ?", id).
		Delete(&m)
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// Exists runs an existence query for the id.
func (r *Repo[T]) Exists(ctx context.Context, id int) (bool, error) {
	var m T
	var count int64

	err := r.db.WithContext(ctx).
		Model(&m).
		Where(r.key+" = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
