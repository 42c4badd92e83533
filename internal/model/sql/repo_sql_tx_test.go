package sql

import (
	"context"
	"errors"
	"testing"

	"jobplus/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockRepository(t *testing.T) (sqlmock.Sqlmock, *GormRepository) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return mock, NewGormRepository(db)
}

func TestTransactionCommitsOnSuccess(t *testing.T) {
	mock, repo := setupMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := repo.Transaction(context.Background(), func(tx *GormRepository) error {
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollsBackOnError(t *testing.T) {
	mock, repo := setupMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("constraint violated")
	err := repo.Transaction(context.Background(), func(tx *GormRepository) error {
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRollsBackFailedInsert(t *testing.T) {
	mock, repo := setupMockRepository(t)
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "user"`).WillReturnError(errors.New("duplicate key value violates unique constraint"))
	mock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(tx *GormRepository) error {
		return tx.CreateUsers(context.Background(), []entity.DbUser{
			{Username: "a", Email: "a@example.com", PasswordHash: "hash"},
			{Username: "b", Email: "b@example.com", PasswordHash: "hash"},
		})
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
	assert.NoError(t, mock.ExpectationsWereMet())
}
