package repository

import (
	"context"
	"regexp"
	"testing"

	"bloxmarket/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestVoteRepository_GetNoVote(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "votes"`)).
		WithArgs(uint(1), "trade", uint(5), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "subject_type", "subject_id", "value"}))

	vote, err := repo.Get(context.Background(), 1, models.SubjectTrade, 5)
	assert.NoError(t, err)
	assert.Nil(t, vote, "missing vote is nil, not an error")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_GetExisting(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "votes"`)).
		WithArgs(uint(1), "trade", uint(5), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "subject_type", "subject_id", "value"}).
			AddRow(3, 1, "trade", 5, 1))

	vote, err := repo.Get(context.Background(), 1, models.SubjectTrade, 5)
	require.NoError(t, err)
	require.NotNil(t, vote)
	assert.Equal(t, 1, vote.Value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_SetUpserts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVoteRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "votes"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	err := repo.Set(context.Background(), &models.Vote{
		UserID: 1, SubjectType: models.SubjectTrade, SubjectID: 5, Value: 1,
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVoteRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "votes"`)).
		WithArgs(uint(1), "trade", uint(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 1, models.SubjectTrade, 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestVoteRepository_Counts(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewVoteRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "votes"`)).
		WithArgs("trade", uint(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "votes"`)).
		WithArgs("trade", uint(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	up, down, err := repo.Counts(context.Background(), models.SubjectTrade, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(4), up)
	assert.Equal(t, int64(2), down)
	assert.NoError(t, mock.ExpectationsWereMet())
}
