package model

import (
	"context"
	"jobplus/internal/entity"
)

// Repository 定义数据库操作接口
type Repository interface {
	// 用户管理
	CreateUser(ctx context.Context, user *entity.DbUser) error
	CreateUsers(ctx context.Context, users []entity.DbUser) error
	UpdateUser(ctx context.Context, id uint, updates entity.UserUpdates) error
	GetUserByEmail(ctx context.Context, email string) (*entity.DbUser, error)
	GetUserByID(ctx context.Context, id uint) (*entity.DbUser, error)
	ListUsers(ctx context.Context, params *entity.UserQuery) ([]entity.DbUser, *entity.Meta, error)
	DisableUser(ctx context.Context, id uint) error
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// 企业
	CreateCompany(ctx context.Context, company *entity.DbCompanyDetail) error
	CreateCompanies(ctx context.Context, companies []entity.DbCompanyDetail) error
	UpdateCompany(ctx context.Context, id uint, updates entity.CompanyUpdates) error
	GetCompany(ctx context.Context, id uint) (*entity.DbCompanyDetail, error)
	GetCompanyByUser(ctx context.Context, userID uint) (*entity.DbCompanyDetail, error)
	ListCompanies(ctx context.Context, params *entity.CompanyQuery) ([]entity.DbCompanyDetail, *entity.Meta, error)
	DeleteCompany(ctx context.Context, id uint) error
	CountCompanies(ctx context.Context) (int64, error)

	// 职位
	CreateJob(ctx context.Context, job *entity.DbJob) error
	CreateJobs(ctx context.Context, jobs []entity.DbJob) error
	UpdateJob(ctx context.Context, id uint, updates entity.JobUpdates) error
	GetJobByID(ctx context.Context, id uint) (*entity.DbJob, error)
	ListJobs(ctx context.Context, params *entity.JobQuery) ([]entity.DbJob, *entity.Meta, error)
	SetJobOnline(ctx context.Context, id uint, online bool) error
	DeleteJob(ctx context.Context, id uint) error
	CountJobs(ctx context.Context) (int64, error)

	// 投递记录
	CreateDelivery(ctx context.Context, delivery *entity.DbDelivery) error
	GetDelivery(ctx context.Context, id uint) (*entity.DbDelivery, error)
	ListDeliveries(ctx context.Context, params *entity.DeliveryQuery) ([]entity.DbDelivery, *entity.Meta, error)
	UpdateDeliveryStatus(ctx context.Context, id uint, status entity.DeliveryStatus, response string) error
	HasApplied(ctx context.Context, jobID, userID uint) (bool, error)
	CountDeliveries(ctx context.Context) (int64, error)

	// WithTx 在同一事务中执行 fn，fn 返回错误或 panic 时整体回滚。
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
