package sql

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"jobplus/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *GormRepository {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "jobplus.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent), TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.DbUser{}, &entity.DbCompanyDetail{}, &entity.DbJob{}, &entity.DbDelivery{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewGormRepository(db)
}

func mustCreateUser(t *testing.T, repo *GormRepository, email string, role entity.UserRole) *entity.DbUser {
	t.Helper()
	user := &entity.DbUser{Username: email, Email: email, PasswordHash: "hash", Role: role, IsActive: true}
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

func mustCreateCompany(t *testing.T, repo *GormRepository, owner *entity.DbUser) *entity.DbCompanyDetail {
	t.Helper()
	company := &entity.DbCompanyDetail{Logo: "https://example.com/logo.png", Site: "https://example.com", Location: "上海"}
	if owner != nil {
		company.UserID = &owner.ID
	}
	require.NoError(t, repo.CreateCompany(context.Background(), company))
	return company
}

func mustCreateJob(t *testing.T, repo *GormRepository, company *entity.DbCompanyDetail, title string) *entity.DbJob {
	t.Helper()
	job := &entity.DbJob{Title: title, CompanyID: company.ID, SalaryMin: 3000, SalaryMax: 8000, Online: true}
	require.NoError(t, repo.CreateJob(context.Background(), job))
	return job
}

func mustCreateDelivery(t *testing.T, repo *GormRepository, job *entity.DbJob, user *entity.DbUser) *entity.DbDelivery {
	t.Helper()
	delivery := &entity.DbDelivery{JobID: &job.ID, UserID: &user.ID, CompanyID: job.CompanyID}
	require.NoError(t, repo.CreateDelivery(context.Background(), delivery))
	return delivery
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	repo := newTestRepository(t)
	mustCreateUser(t, repo, "dup@example.com", entity.UserRoleNormal)

	err := repo.CreateUser(context.Background(), &entity.DbUser{Username: "other", Email: "dup@example.com", PasswordHash: "hash"})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	count, err := repo.CountUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateUserRunsValidation(t *testing.T) {
	repo := newTestRepository(t)
	err := repo.CreateUser(context.Background(), &entity.DbUser{Email: "nouser@example.com", PasswordHash: "hash"})

	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "Username")
}

func TestGetUserByEmailIsCaseInsensitive(t *testing.T) {
	repo := newTestRepository(t)
	created := mustCreateUser(t, repo, "mixed@example.com", entity.UserRoleCompany)

	user, err := repo.GetUserByEmail(context.Background(), "  MIXED@example.com ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.True(t, user.IsCompany())
	assert.True(t, user.IsActive)

	_, err = repo.GetUserByEmail(context.Background(), "missing@example.com")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDisableUserKeepsRecord(t *testing.T) {
	repo := newTestRepository(t)
	user := mustCreateUser(t, repo, "soft@example.com", entity.UserRoleNormal)

	require.NoError(t, repo.DisableUser(context.Background(), user.ID))
	require.NoError(t, repo.DisableUser(context.Background(), user.ID))

	loaded, err := repo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, loaded.IsActive)

	err = repo.DisableUser(context.Background(), user.ID+100)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestDeleteCompanyCascadesJobs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	owner := mustCreateUser(t, repo, "owner@example.com", entity.UserRoleCompany)
	seeker := mustCreateUser(t, repo, "seeker@example.com", entity.UserRoleNormal)

	doomed := mustCreateCompany(t, repo, owner)
	kept := mustCreateCompany(t, repo, nil)
	doomedJob := mustCreateJob(t, repo, doomed, "后端工程师")
	mustCreateJob(t, repo, doomed, "前端工程师")
	keptJob := mustCreateJob(t, repo, kept, "测试工程师")
	delivery := mustCreateDelivery(t, repo, doomedJob, seeker)

	require.NoError(t, repo.DeleteCompany(ctx, doomed.ID))

	jobs, _, err := repo.ListJobs(ctx, nil)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, keptJob.ID, jobs[0].ID)

	_, err = repo.GetCompany(ctx, doomed.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	orphan, err := repo.GetDelivery(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.JobID)
	require.NotNil(t, orphan.UserID)
	assert.Equal(t, seeker.ID, *orphan.UserID)

	// 企业删除不影响其归属用户
	_, err = repo.GetUserByID(ctx, owner.ID)
	assert.NoError(t, err)

	assert.True(t, errors.Is(repo.DeleteCompany(ctx, doomed.ID), gorm.ErrRecordNotFound))
}

func TestDeleteUserClearsReferences(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	owner := mustCreateUser(t, repo, "boss@example.com", entity.UserRoleCompany)
	company := mustCreateCompany(t, repo, owner)
	job := mustCreateJob(t, repo, company, "产品经理")
	delivery := mustCreateDelivery(t, repo, job, owner)

	require.NoError(t, repo.DeleteUser(ctx, owner.ID))

	loadedDelivery, err := repo.GetDelivery(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Nil(t, loadedDelivery.UserID)
	require.NotNil(t, loadedDelivery.JobID)
	assert.Equal(t, job.ID, *loadedDelivery.JobID)

	loadedCompany, err := repo.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Nil(t, loadedCompany.UserID)

	jobCount, err := repo.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), jobCount)

	assert.True(t, errors.Is(repo.DeleteUser(ctx, owner.ID), gorm.ErrRecordNotFound))
}

func TestDeleteJobKeepsDeliveries(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	seeker := mustCreateUser(t, repo, "applicant@example.com", entity.UserRoleNormal)
	company := mustCreateCompany(t, repo, nil)
	job := mustCreateJob(t, repo, company, "运维工程师")
	delivery := mustCreateDelivery(t, repo, job, seeker)

	require.NoError(t, repo.DeleteJob(ctx, job.ID))

	loaded, err := repo.GetDelivery(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.JobID)
	assert.Equal(t, company.ID, loaded.CompanyID)
}

func TestCreateJobRequiresExistingCompany(t *testing.T) {
	repo := newTestRepository(t)
	err := repo.CreateJob(context.Background(), &entity.DbJob{Title: "幽灵职位", CompanyID: 999})
	assert.Error(t, err)
}

func TestHasApplied(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	seeker := mustCreateUser(t, repo, "hunter@example.com", entity.UserRoleNormal)
	other := mustCreateUser(t, repo, "idle@example.com", entity.UserRoleNormal)
	company := mustCreateCompany(t, repo, nil)
	job := mustCreateJob(t, repo, company, "数据分析师")
	mustCreateDelivery(t, repo, job, seeker)

	applied, err := repo.HasApplied(ctx, job.ID, seeker.ID)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.HasApplied(ctx, job.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = repo.HasApplied(ctx, job.ID, 0)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestUpdateDeliveryStatus(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	seeker := mustCreateUser(t, repo, "status@example.com", entity.UserRoleNormal)
	company := mustCreateCompany(t, repo, nil)
	job := mustCreateJob(t, repo, company, "设计师")
	delivery := mustCreateDelivery(t, repo, job, seeker)
	assert.Equal(t, entity.DeliveryStatusWaiting, delivery.Status)

	require.NoError(t, repo.UpdateDeliveryStatus(ctx, delivery.ID, entity.DeliveryStatusAccepted, "欢迎加入"))
	loaded, err := repo.GetDelivery(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryStatusAccepted, loaded.Status)
	assert.Equal(t, "欢迎加入", loaded.Response)

	assert.Error(t, repo.UpdateDeliveryStatus(ctx, delivery.ID, entity.DeliveryStatus(7), ""))
	assert.True(t, errors.Is(repo.UpdateDeliveryStatus(ctx, delivery.ID+1, entity.DeliveryStatusRejected, ""), gorm.ErrRecordNotFound))
}

func TestListJobsFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	first := mustCreateCompany(t, repo, nil)
	second := mustCreateCompany(t, repo, nil)
	for i := 0; i < 5; i++ {
		mustCreateJob(t, repo, first, fmt.Sprintf("Go 工程师 %d", i))
	}
	offline := mustCreateJob(t, repo, second, "Rust 工程师")
	require.NoError(t, repo.SetJobOnline(ctx, offline.ID, false))

	jobs, meta, err := repo.ListJobs(ctx, &entity.JobQuery{CompanyID: first.ID, BaseParams: entity.BaseParams{Page: 2, PageSize: 2}})
	require.NoError(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, int64(5), meta.Total)
	assert.Equal(t, int64(2), meta.Page)

	jobs, meta, err = repo.ListJobs(ctx, &entity.JobQuery{OnlineOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(5), meta.Total)
	for _, job := range jobs {
		assert.True(t, job.Online)
	}

	jobs, _, err = repo.ListJobs(ctx, &entity.JobQuery{Keyword: "rust"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.False(t, jobs[0].Online)
}

func TestListUsersAndDeliveries(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	seeker := mustCreateUser(t, repo, "a@example.com", entity.UserRoleNormal)
	mustCreateUser(t, repo, "b@example.com", entity.UserRoleCompany)
	admin := mustCreateUser(t, repo, "c@example.com", entity.UserRoleAdmin)
	require.NoError(t, repo.DisableUser(ctx, admin.ID))

	users, meta, err := repo.ListUsers(ctx, &entity.UserQuery{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), meta.Total)
	assert.Len(t, users, 2)

	users, _, err = repo.ListUsers(ctx, &entity.UserQuery{Role: entity.UserRoleCompany})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "b@example.com", users[0].Email)

	company := mustCreateCompany(t, repo, nil)
	job := mustCreateJob(t, repo, company, "实习生")
	mustCreateDelivery(t, repo, job, seeker)

	deliveries, meta, err := repo.ListDeliveries(ctx, &entity.DeliveryQuery{CompanyID: company.ID, Status: entity.DeliveryStatusWaiting})
	require.NoError(t, err)
	assert.Equal(t, int64(1), meta.Total)
	require.Len(t, deliveries, 1)
	assert.Equal(t, seeker.ID, *deliveries[0].UserID)
}

func TestCompanyOwnership(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	owner := mustCreateUser(t, repo, "founder@example.com", entity.UserRoleCompany)
	company := mustCreateCompany(t, repo, nil)

	_, err := repo.GetCompanyByUser(ctx, owner.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.NoError(t, repo.UpdateCompany(ctx, company.ID, entity.CompanyUpdates{UserID: &owner.ID}))
	loaded, err := repo.GetCompanyByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, company.ID, loaded.ID)

	// 一个用户最多拥有一家企业
	second := mustCreateCompany(t, repo, nil)
	assert.Error(t, repo.UpdateCompany(ctx, second.ID, entity.CompanyUpdates{UserID: &owner.ID}))

	zero := uint(0)
	require.NoError(t, repo.UpdateCompany(ctx, company.ID, entity.CompanyUpdates{UserID: &zero}))
	loaded, err = repo.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.UserID)
}

func TestTransactionRollsBackAllWrites(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	boom := errors.New("boom")

	err := repo.Transaction(ctx, func(tx *GormRepository) error {
		if err := tx.CreateUsers(ctx, []entity.DbUser{
			{Username: "u1", Email: "u1@example.com", PasswordHash: "hash"},
			{Username: "u2", Email: "u2@example.com", PasswordHash: "hash"},
		}); err != nil {
			return err
		}
		if err := tx.CreateCompanies(ctx, []entity.DbCompanyDetail{
			{Logo: "l", Site: "s", Location: "北京"},
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	users, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, users)
	companies, err := repo.CountCompanies(ctx)
	require.NoError(t, err)
	assert.Zero(t, companies)
}

func TestCreateBatchWritesBackIDs(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	companies := []entity.DbCompanyDetail{
		{Logo: "l1", Site: "s1", Location: "深圳"},
		{Logo: "l2", Site: "s2", Location: "广州"},
	}
	require.NoError(t, repo.CreateCompanies(ctx, companies))
	for _, c := range companies {
		assert.NotZero(t, c.ID)
	}
}

func TestNilRepository(t *testing.T) {
	var repo *GormRepository
	_, err := repo.CountUsers(context.Background())
	assert.ErrorIs(t, err, errNotInitialised)
	assert.ErrorIs(t, repo.Transaction(context.Background(), func(*GormRepository) error { return nil }), errNotInitialised)
}

func TestCreateKeepsFalseFlags(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	disabled := &entity.DbUser{Username: "off", Email: "off@example.com", PasswordHash: "hash", IsActive: false}
	require.NoError(t, repo.CreateUser(ctx, disabled))
	assert.False(t, disabled.IsActive)
	loadedUser, err := repo.GetUserByID(ctx, disabled.ID)
	require.NoError(t, err)
	assert.False(t, loadedUser.IsActive)

	company := mustCreateCompany(t, repo, nil)
	offline := &entity.DbJob{Title: "下线职位", CompanyID: company.ID, Online: false}
	require.NoError(t, repo.CreateJob(ctx, offline))
	assert.False(t, offline.Online)
	loadedJob, err := repo.GetJobByID(ctx, offline.ID)
	require.NoError(t, err)
	assert.False(t, loadedJob.Online)

	batch := []entity.DbJob{
		{Title: "在线", CompanyID: company.ID, Online: true},
		{Title: "离线", CompanyID: company.ID, Online: false},
	}
	require.NoError(t, repo.CreateJobs(ctx, batch))
	online, _, err := repo.ListJobs(ctx, &entity.JobQuery{OnlineOnly: true})
	require.NoError(t, err)
	require.Len(t, online, 1)
	assert.Equal(t, batch[0].ID, online[0].ID)
}

// 绕过仓库层直接执行 SQL，验证外键约束本身的级联与置空规则。
func TestForeignKeyRulesInDatabase(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)
	owner := mustCreateUser(t, repo, "owner@example.com", entity.UserRoleCompany)
	applicant := mustCreateUser(t, repo, "applicant@example.com", entity.UserRoleNormal)
	company := mustCreateCompany(t, repo, owner)
	job := mustCreateJob(t, repo, company, "后端工程师")
	delivery := mustCreateDelivery(t, repo, job, applicant)

	require.NoError(t, repo.DB().Exec(`DELETE FROM "user" WHERE id = ?`, applicant.ID).Error)
	require.NoError(t, repo.DB().Exec(`DELETE FROM "user" WHERE id = ?`, owner.ID).Error)

	loadedCompany, err := repo.GetCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Nil(t, loadedCompany.UserID)

	require.NoError(t, repo.DB().Exec("DELETE FROM company WHERE id = ?", company.ID).Error)

	jobs, err := repo.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), jobs)

	loaded, err := repo.GetDelivery(ctx, delivery.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded.UserID)
	assert.Nil(t, loaded.JobID)
	assert.Equal(t, company.ID, loaded.CompanyID)
}
