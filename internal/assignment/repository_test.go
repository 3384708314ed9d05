package assignment

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sharath018/secret-santa-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewRepository(gdb), mock
}

func sampleRows(at time.Time) []models.Assignment {
	return []models.Assignment{
		{ID: "a1", EventID: "ev-1", GiverEmail: "a@x.io", GiverName: "A", ReceiverEmail: "b@x.io", ReceiverName: "B", CreatedAt: at},
		{ID: "a2", EventID: "ev-1", GiverEmail: "b@x.io", GiverName: "B", ReceiverEmail: "c@x.io", ReceiverName: "C", CreatedAt: at},
		{ID: "a3", EventID: "ev-1", GiverEmail: "c@x.io", GiverName: "C", ReceiverEmail: "a@x.io", ReceiverName: "A", CreatedAt: at},
	}
}

func TestCommitDrawCommits(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Date(2026, 12, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "events" SET`)).
		WithArgs(true, at, "ev-1", false).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "assignments"`)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, repo.CommitDraw(context.Background(), "ev-1", sampleRows(at), at))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitDrawAlreadyDrawnRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "events" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.CommitDraw(context.Background(), "ev-1", sampleRows(at), at)
	assert.Equal(t, ErrAlreadyDrawn, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommitDrawInsertFailureRollsBack(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "events" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "assignments"`)).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.CommitDraw(context.Background(), "ev-1", sampleRows(at), at)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert assignments")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResetDeletesAndClearsFlag(t *testing.T) {
	repo, mock := newMockRepo(t)
	at := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "assignments"`)).
		WithArgs("ev-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "events" SET`)).
		WithArgs(false, at, "ev-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Reset(context.Background(), "ev-1", at)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
