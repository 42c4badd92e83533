package sql

import (
	"context"
	"fmt"
	"jobplus/internal/entity"
)

// CreateDelivery records a new application.
func (r *GormRepository) CreateDelivery(ctx context.Context, delivery *entity.DbDelivery) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if delivery == nil {
		return fmt.Errorf("delivery is nil")
	}
	return r.db.WithContext(ctx).Create(delivery).Error
}

// GetDelivery loads a delivery by ID.
func (r *GormRepository) GetDelivery(ctx context.Context, id uint) (*entity.DbDelivery, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid delivery id")
	}
	var delivery entity.DbDelivery
	if err := r.db.WithContext(ctx).First(&delivery, id).Error; err != nil {
		return nil, err
	}
	return &delivery, nil
}

// ListDeliveries returns paginated deliveries matching the filter.
func (r *GormRepository) ListDeliveries(ctx context.Context, params *entity.DeliveryQuery) ([]entity.DbDelivery, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, errNotInitialised
	}
	if params == nil {
		params = &entity.DeliveryQuery{}
	}

	query := r.db.WithContext(ctx).Model(&entity.DbDelivery{})
	if params.JobID != 0 {
		query = query.Where("job_id = ?", params.JobID)
	}
	if params.UserID != 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.CompanyID != 0 {
		query = query.Where("company_id = ?", params.CompanyID)
	}
	if params.Status != 0 {
		query = query.Where("status = ?", params.Status)
	}

	var deliveries []entity.DbDelivery
	meta, err := r.paginate(query, params.BaseParams, "id DESC", &deliveries)
	if err != nil {
		return nil, nil, err
	}
	return deliveries, meta, nil
}

// UpdateDeliveryStatus overwrites status and response message.
func (r *GormRepository) UpdateDeliveryStatus(ctx context.Context, id uint, status entity.DeliveryStatus, response string) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid delivery id")
	}
	if !status.Valid() {
		return fmt.Errorf("invalid delivery status: %d", int(status))
	}
	candidate := entity.DbDelivery{Status: status, Response: response}
	if err := candidate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&entity.DbDelivery{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":   status,
		"response": response,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, &entity.DbDelivery{}, id)
	}
	return nil
}

// HasApplied reports whether the user already applied to the job.
func (r *GormRepository) HasApplied(ctx context.Context, jobID, userID uint) (bool, error) {
	if r == nil || r.db == nil {
		return false, errNotInitialised
	}
	if jobID == 0 || userID == 0 {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DbDelivery{}).
		Where("job_id = ? AND user_id = ?", jobID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountDeliveries returns total delivery count.
func (r *GormRepository) CountDeliveries(ctx context.Context) (int64, error) {
	return r.count(ctx, &entity.DbDelivery{})
}
