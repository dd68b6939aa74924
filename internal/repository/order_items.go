package repository

import (
	"avtopark/vehicle-api/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

// OrderItemRepo repeats the CRUD contract for the one entity keyed by a
// composite primary key, (request_id, vehicle_id), instead of a single
// discovered column.
type OrderItemRepo struct {
	db *gorm.DB
}

func NewOrderItems(db *gorm.DB) *OrderItemRepo {
	return &OrderItemRepo{db: db}
}

func (r *OrderItemRepo) GetAll(ctx context.Context, skip, limit int) ([]model.OrderItem, error) {
	var items []model.OrderItem

	err := r.db.WithContext(ctx).
		Order("request_id, vehicle_id").
		Offset(skip).
		Limit(limit).
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

// GetByRequest returns every line item of one request.
func (r *OrderItemRepo) GetByRequest(ctx context.Context, requestID int) ([]model.OrderItem, error) {
	var items []model.OrderItem

	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Order("vehicle_id").
		Find(&items).
		Error
	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *OrderItemRepo) Get(ctx context.Context, requestID, vehicleID int) (*model.OrderItem, error) {
	var item model.OrderItem

	err := r.db.WithContext(ctx).
		Where("request_id = ? AND vehicle_id = ?", requestID, vehicleID).
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

// Create inserts a line item. Creating the same (request, vehicle) pair
// twice collides on the composite key and returns ErrConflict.
func (r *OrderItemRepo) Create(ctx context.Context, item *model.OrderItem) error {
	err := r.db.WithContext(ctx).Create(item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrConflict
	}

	return err
}

func (r *OrderItemRepo) Update(ctx context.Context, requestID, vehicleID int, fields map[string]any) (*model.OrderItem, error) {
	if len(fields) > 0 {
		err := r.db.WithContext(ctx).
			Model(&model.OrderItem{}).
			Where("request_id = ? AND vehicle_id = ?", requestID, vehicleID).
			Updates(fields).
			Error
		if err != nil {
			return nil, err
		}
	}

	return r.Get(ctx, requestID, vehicleID)
}

func (r *OrderItemRepo) Delete(ctx context.Context, requestID, vehicleID int) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("request_id = ? AND vehicle_id = ?", requestID, vehicleID).
		Delete(&model.OrderItem{})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}
