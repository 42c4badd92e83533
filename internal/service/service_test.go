package service

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"testing"

	"jobplus/internal/config"
	"jobplus/internal/entity"
	"jobplus/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) model.Repository {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	repo, err := model.InitRepository(&config.Config{
		DBType: model.DBTypeSQLite,
		DBPath: filepath.Join(t.TempDir(), "service.db"),
	}, log)
	require.NoError(t, err)
	return repo
}

func mustCompany(t *testing.T, repo model.Repository) *entity.DbCompanyDetail {
	t.Helper()
	company := &entity.DbCompanyDetail{Logo: "https://cdn.example.com/old.png", Site: "https://example.com", Location: "Shanghai"}
	require.NoError(t, repo.CreateCompany(context.Background(), company))
	return company
}

func mustJob(t *testing.T, repo model.Repository, companyID uint) *entity.DbJob {
	t.Helper()
	job := &entity.DbJob{Title: "Go Engineer", CompanyID: companyID, SalaryMin: 3000, SalaryMax: 8000, Online: true}
	require.NoError(t, repo.CreateJob(context.Background(), job))
	return job
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
