package sql

import (
	"context"
	"fmt"
	"jobplus/internal/entity"
	"strings"

	"gorm.io/gorm"
)

// CreateJob inserts a new job posting.
func (r *GormRepository) CreateJob(ctx context.Context, job *entity.DbJob) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if job == nil {
		return fmt.Errorf("job is nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// CreateJobs inserts jobs in one statement; IDs are written back to the slice.
func (r *GormRepository) CreateJobs(ctx context.Context, jobs []entity.DbJob) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if len(jobs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&jobs).Error
}

// UpdateJob updates job fields.
func (r *GormRepository) UpdateJob(ctx context.Context, id uint, updates entity.JobUpdates) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid job id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbJob{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, &entity.DbJob{}, id)
	}
	return nil
}

// GetJobByID loads a job by ID.
func (r *GormRepository) GetJobByID(ctx context.Context, id uint) (*entity.DbJob, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid job id")
	}
	var job entity.DbJob
	if err := r.db.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// ListJobs returns paginated jobs.
func (r *GormRepository) ListJobs(ctx context.Context, params *entity.JobQuery) ([]entity.DbJob, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, errNotInitialised
	}
	if params == nil {
		params = &entity.JobQuery{}
	}

	query := r.db.WithContext(ctx).Model(&entity.DbJob{})
	if params.CompanyID != 0 {
		query = query.Where("company_id = ?", params.CompanyID)
	}
	if params.OnlineOnly {
		query = query.Where("online = ?", true)
	}
	if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
		kw := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(jobname) LIKE ? OR LOWER(job_tag) LIKE ? OR LOWER(location) LIKE ?", kw, kw, kw)
	}

	var jobs []entity.DbJob
	meta, err := r.paginate(query, params.BaseParams, "id DESC", &jobs)
	if err != nil {
		return nil, nil, err
	}
	return jobs, meta, nil
}

// SetJobOnline 上线或下线职位
func (r *GormRepository) SetJobOnline(ctx context.Context, id uint, online bool) error {
	return r.UpdateJob(ctx, id, entity.JobUpdates{Online: &online})
}

// DeleteJob removes a job; its deliveries are kept with job_id cleared.
func (r *GormRepository) DeleteJob(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid job id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.DbDelivery{}).Where("job_id = ?", id).Update("job_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbJob{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountJobs returns total job count.
func (r *GormRepository) CountJobs(ctx context.Context) (int64, error) {
	return r.count(ctx, &entity.DbJob{})
}
