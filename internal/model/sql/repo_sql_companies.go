package sql

import (
	"context"
	"fmt"
	"jobplus/internal/entity"
	"strings"

	"gorm.io/gorm"
)

// CreateCompany inserts a new company detail.
func (r *GormRepository) CreateCompany(ctx context.Context, company *entity.DbCompanyDetail) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if company == nil {
		return fmt.Errorf("company is nil")
	}
	return r.db.WithContext(ctx).Create(company).Error
}

// CreateCompanies inserts companies in one statement; IDs are written back to the slice.
func (r *GormRepository) CreateCompanies(ctx context.Context, companies []entity.DbCompanyDetail) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if len(companies) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&companies).Error
}

// UpdateCompany updates company fields.
func (r *GormRepository) UpdateCompany(ctx context.Context, id uint, updates entity.CompanyUpdates) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid company id")
	}
	if updates.IsEmpty() {
		return nil
	}
	result := r.db.WithContext(ctx).Model(&entity.DbCompanyDetail{}).Where("id = ?", id).Updates(updates.ToMap())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.ensureExists(ctx, &entity.DbCompanyDetail{}, id)
	}
	return nil
}

// GetCompany loads a company by ID.
func (r *GormRepository) GetCompany(ctx context.Context, id uint) (*entity.DbCompanyDetail, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if id == 0 {
		return nil, fmt.Errorf("invalid company id")
	}
	var company entity.DbCompanyDetail
	if err := r.db.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// GetCompanyByUser loads the company owned by a user.
func (r *GormRepository) GetCompanyByUser(ctx context.Context, userID uint) (*entity.DbCompanyDetail, error) {
	if r == nil || r.db == nil {
		return nil, errNotInitialised
	}
	if userID == 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	var company entity.DbCompanyDetail
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// ListCompanies returns paginated companies.
func (r *GormRepository) ListCompanies(ctx context.Context, params *entity.CompanyQuery) ([]entity.DbCompanyDetail, *entity.Meta, error) {
	if r == nil || r.db == nil {
		return nil, nil, errNotInitialised
	}
	if params == nil {
		params = &entity.CompanyQuery{}
	}

	query := r.db.WithContext(ctx).Model(&entity.DbCompanyDetail{})
	if keyword := strings.TrimSpace(params.Keyword); keyword != "" {
		kw := "%" + strings.ToLower(keyword) + "%"
		query = query.Where("LOWER(location) LIKE ? OR LOWER(field) LIKE ? OR LOWER(tags) LIKE ?", kw, kw, kw)
	}

	var companies []entity.DbCompanyDetail
	meta, err := r.paginate(query, params.BaseParams, "id DESC", &companies)
	if err != nil {
		return nil, nil, err
	}
	return companies, meta, nil
}

// DeleteCompany removes a company together with its jobs. Deliveries for those
// jobs are kept with job_id cleared.
func (r *GormRepository) DeleteCompany(ctx context.Context, id uint) error {
	if r == nil || r.db == nil {
		return errNotInitialised
	}
	if id == 0 {
		return fmt.Errorf("invalid company id")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		jobIDs := tx.Model(&entity.DbJob{}).Select("id").Where("company_id = ?", id)
		if err := tx.Model(&entity.DbDelivery{}).Where("job_id IN (?)", jobIDs).Update("job_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", id).Delete(&entity.DbJob{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&entity.DbCompanyDetail{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// CountCompanies returns total company count.
func (r *GormRepository) CountCompanies(ctx context.Context) (int64, error) {
	return r.count(ctx, &entity.DbCompanyDetail{})
}
