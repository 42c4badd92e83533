package sql

import (
	"context"
	"errors"
	"jobplus/internal/entity"

	"gorm.io/gorm"
)

var errNotInitialised = errors.New("repository not initialised")

// GormRepository implements Repository using GORM
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a new repository instance
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// DB exposes the underlying handle, mainly for tests and migrations.
func (r *GormRepository) DB() *gorm.DB {
	if r == nil {
		return nil
	}
	return r.db
}

// Transaction runs fn against a repository bound to a single transaction.
// fn returning an error, or panicking, rolls back every write made through tx.
func (r *GormRepository) Transaction(ctx context.Context, fn func(tx *GormRepository) error) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormRepository{db: tx})
	})
}

// calculatePagination calculates pagination metrics
func (r *GormRepository) calculatePagination(totalCount int64, page, pageSize int) *entity.Meta {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	return &entity.Meta{
		Total:    totalCount,
		Page:     int64(page),
		PageSize: int64(pageSize),
	}
}

// paginate counts the filtered rows and loads the requested page into dest.
func (r *GormRepository) paginate(query *gorm.DB, params entity.BaseParams, defaultOrder string, dest interface{}) (*entity.Meta, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	page, pageSize := params.Pagination()
	order := defaultOrder
	if params.SortBy != "" && sortableColumns[params.SortBy] {
		direction := "ASC"
		if params.SortDesc {
			direction = "DESC"
		}
		order = params.SortBy + " " + direction
	}

	if err := query.Order(order).Offset(params.Offset()).Limit(pageSize).Find(dest).Error; err != nil {
		return nil, err
	}
	return r.calculatePagination(total, page, pageSize), nil
}

// sortableColumns 允许排序的列，防止 SortBy 注入任意 SQL。
var sortableColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"salary_min": true,
	"salary_max": true,
	"experience": true,
	"status":     true,
}
