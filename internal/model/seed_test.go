package model

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"jobplus/internal/config"
	"jobplus/internal/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newSQLiteRepository(t *testing.T) Repository {
	t.Helper()
	cfg := &config.Config{
		DBType: DBTypeSQLite,
		DBPath: filepath.Join(t.TempDir(), "nested", "seed.db"),
	}
	repo, err := InitRepository(cfg, quietLogger())
	require.NoError(t, err)
	return repo
}

type counts struct {
	users, companies, jobs, deliveries int64
}

func countAll(t *testing.T, repo Repository) counts {
	t.Helper()
	ctx := context.Background()
	var c counts
	var err error
	c.users, err = repo.CountUsers(ctx)
	require.NoError(t, err)
	c.companies, err = repo.CountCompanies(ctx)
	require.NoError(t, err)
	c.jobs, err = repo.CountJobs(ctx)
	require.NoError(t, err)
	c.deliveries, err = repo.CountDeliveries(ctx)
	require.NoError(t, err)
	return c
}

func TestGeneratorRunInsertsDefaultCounts(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	result, err := NewGenerator(SeedOptions{RandomSeed: 7}, quietLogger()).Run(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Users: 15, Companies: 10, Jobs: 50}, result)
	assert.Equal(t, counts{users: 15, companies: 10, jobs: 50, deliveries: 0}, countAll(t, repo))

	jobs, _, err := repo.ListJobs(ctx, &entity.JobQuery{BaseParams: entity.BaseParams{PageSize: 100}})
	require.NoError(t, err)
	require.Len(t, jobs, 50)
	for _, job := range jobs {
		_, err := repo.GetCompany(ctx, job.CompanyID)
		require.NoError(t, err, "job %d references missing company %d", job.ID, job.CompanyID)
		assert.GreaterOrEqual(t, job.SalaryMin, 2000)
		assert.LessOrEqual(t, job.SalaryMin, 5000)
		assert.GreaterOrEqual(t, job.SalaryMax, 6000)
		assert.LessOrEqual(t, job.SalaryMax, 10000)
		assert.GreaterOrEqual(t, job.Experience, 0)
		assert.LessOrEqual(t, job.Experience, 5)
		assert.True(t, job.Online)
	}

	users, _, err := repo.ListUsers(ctx, &entity.UserQuery{BaseParams: entity.BaseParams{PageSize: 100}})
	require.NoError(t, err)
	for _, user := range users {
		assert.True(t, strings.HasPrefix(user.PasswordHash, "$2"), "password for %s is not a bcrypt hash", user.Email)
		assert.False(t, user.IsAdmin())
		assert.Contains(t, []entity.UserRole{entity.UserRoleNormal, entity.UserRoleCompany}, user.Role)
	}
}

func TestGeneratorRunAddsToExistingRows(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	_, err := NewGenerator(SeedOptions{RandomSeed: 1}, quietLogger()).Run(ctx, repo)
	require.NoError(t, err)
	_, err = NewGenerator(SeedOptions{RandomSeed: 2}, quietLogger()).Run(ctx, repo)
	require.NoError(t, err)

	assert.Equal(t, counts{users: 30, companies: 20, jobs: 100}, countAll(t, repo))
}

func TestGeneratorRollsBackOnConstraintViolation(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	_, err := NewGenerator(SeedOptions{RandomSeed: 3}, quietLogger()).Run(ctx, repo)
	require.NoError(t, err)
	before := countAll(t, repo)

	gen := NewGenerator(SeedOptions{RandomSeed: 4}, quietLogger())
	batch, err := gen.Build()
	require.NoError(t, err)
	batch.Users[len(batch.Users)-1].Email = batch.Users[0].Email

	_, err = gen.Insert(ctx, repo, batch)
	require.Error(t, err)
	assert.Equal(t, before, countAll(t, repo))
}

func TestGeneratorRollsBackWhenLastInsertFails(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	gen := NewGenerator(SeedOptions{RandomSeed: 5}, quietLogger())
	batch, err := gen.Build()
	require.NoError(t, err)
	// 职位名称为空违反 not null 约束，此时用户和企业已写入事务
	batch.Jobs[len(batch.Jobs)-1].Title = ""

	_, err = gen.Insert(ctx, repo, batch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert jobs")
	assert.Equal(t, counts{}, countAll(t, repo))
}

func TestGeneratorInsertLeavesBatchReusable(t *testing.T) {
	ctx := context.Background()
	repo := newSQLiteRepository(t)

	gen := NewGenerator(SeedOptions{Users: 3, Companies: 2, Jobs: 4, RandomSeed: 6}, quietLogger())
	batch, err := gen.Build()
	require.NoError(t, err)
	title := batch.Jobs[0].Title
	batch.Jobs[0].Title = ""

	_, err = gen.Insert(ctx, repo, batch)
	require.Error(t, err)
	for i := range batch.Users {
		assert.Zero(t, batch.Users[i].ID)
	}
	for i := range batch.Companies {
		assert.Zero(t, batch.Companies[i].ID)
	}
	for i := range batch.Jobs {
		assert.Zero(t, batch.Jobs[i].ID)
		assert.Zero(t, batch.Jobs[i].CompanyID)
	}

	batch.Jobs[0].Title = title
	result, err := gen.Insert(ctx, repo, batch)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Users: 3, Companies: 2, Jobs: 4}, result)
	assert.Equal(t, counts{users: 3, companies: 2, jobs: 4}, countAll(t, repo))
	assert.Zero(t, batch.Jobs[0].ID)
}

func TestGeneratorBuildIsDeterministicForSeed(t *testing.T) {
	first, err := NewGenerator(SeedOptions{Users: 3, Companies: 2, Jobs: 4, RandomSeed: 99}, quietLogger()).Build()
	require.NoError(t, err)
	second, err := NewGenerator(SeedOptions{Users: 3, Companies: 2, Jobs: 4, RandomSeed: 99}, quietLogger()).Build()
	require.NoError(t, err)

	require.Len(t, first.Users, 3)
	require.Len(t, first.Companies, 2)
	require.Len(t, first.Jobs, 4)
	for i := range first.Users {
		assert.Equal(t, first.Users[i].Email, second.Users[i].Email)
		assert.Equal(t, first.Users[i].Username, second.Users[i].Username)
	}
	for i := range first.Jobs {
		assert.Equal(t, first.Jobs[i].Title, second.Jobs[i].Title)
		assert.Equal(t, first.Jobs[i].SalaryMin, second.Jobs[i].SalaryMin)
	}
}

func TestGeneratorBuildRespectsColumnConstraints(t *testing.T) {
	batch, err := NewGenerator(SeedOptions{RandomSeed: 11}, quietLogger()).Build()
	require.NoError(t, err)

	emails := make(map[string]struct{}, len(batch.Users))
	for i := range batch.Users {
		require.NoError(t, batch.Users[i].Validate())
		emails[batch.Users[i].Email] = struct{}{}
	}
	assert.Len(t, emails, len(batch.Users), "emails must be unique within a batch")
	for i := range batch.Companies {
		require.NoError(t, batch.Companies[i].Validate())
	}
	for i := range batch.Jobs {
		assert.Zero(t, batch.Jobs[i].CompanyID, "company is assigned at insert time")
	}
}

func TestGeneratorInsertRequiresCompaniesForJobs(t *testing.T) {
	repo := newSQLiteRepository(t)
	gen := NewGenerator(SeedOptions{}, quietLogger())
	_, err := gen.Insert(context.Background(), repo, SeedBatch{Jobs: []entity.DbJob{{Title: "孤儿职位"}}})
	require.Error(t, err)
	assert.Equal(t, counts{}, countAll(t, repo))
}

func TestSeedOptionsDefaults(t *testing.T) {
	opts := SeedOptions{Users: -1}.withDefaults()
	assert.Equal(t, DefaultSeedUsers, opts.Users)
	assert.Equal(t, DefaultSeedCompanies, opts.Companies)
	assert.Equal(t, DefaultSeedJobs, opts.Jobs)
}
