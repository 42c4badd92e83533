package model

import (
	"context"
	"jobplus/internal/model/sql"
)

// gormRepository 将 sql.GormRepository 适配为 Repository，补充事务接口。
type gormRepository struct {
	*sql.GormRepository
}

// NewRepository wraps an existing GORM repository.
func NewRepository(repo *sql.GormRepository) Repository {
	return gormRepository{GormRepository: repo}
}

func (r gormRepository) WithTx(ctx context.Context, fn func(tx Repository) error) error {
	return r.GormRepository.Transaction(ctx, func(tx *sql.GormRepository) error {
		return fn(gormRepository{GormRepository: tx})
	})
}
