package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ngeukam/backendmaoni/internal/repository"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// The consume path relies on the UPDATE itself checking is_active, so two
// concurrent consumers can never both win. These tests pin that the guard is
// in the SQL, not just in application code.
func TestCodeDeactivateConditionalUpdate(t *testing.T) {
	t.Run("reports success when one row flips", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCodeRepository(db)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "codes" SET .+ WHERE id = \$\d+ AND is_active = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		consumed, err := repo.Deactivate(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, consumed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a lost race when no row matches", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := repository.NewCodeRepository(db)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "codes" SET .+ WHERE id = \$\d+ AND is_active = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		consumed, err := repo.Deactivate(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, consumed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDeleteActiveDuplicatesKeepsWinner(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCodeRepository(db)
	keep := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "codes" WHERE invitation_code = \$\d+ AND is_active = \$\d+ AND id <> \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	removed, err := repo.DeleteActiveDuplicates(context.Background(), "AAAAA", keep)
	require.NoError(t, err)
	assert.EqualValues(t, 2, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
