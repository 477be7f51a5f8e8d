package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/socialnet-io/socialnet-backend/internal/models"
)

func newMockStore(t *testing.T) (*GormReportStore, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:                 mockDB,
		DriverName:           "postgres",
		PreferSimpleProtocol: true,
	})

	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	return NewReportStore(db), mock
}

func TestTransitionStatusConditional(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		want         bool
	}{
		{"wins the transition", 1, true},
		{"loses to a concurrent admin", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)

			mock.ExpectBegin()
			mock.ExpectExec(`UPDATE "reports"`).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))
			mock.ExpectCommit()

			ok, err := store.TransitionStatus(context.Background(), uuid.New(), models.StatusPending, ReportChange{
				Status:     models.StatusResolved,
				ReviewedBy: uuid.New(),
				ReviewedAt: time.Now(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindByIDNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT (.+) FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := store.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrReportNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReverseResolvedCountsRows(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reports"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	count, err := store.ReverseResolved(context.Background(), models.TargetPost, uuid.New(),
		"[2026-09-01 12:00] Admin x: mistake", uuid.New(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDueForReporterNotice(t *testing.T) {
	store, mock := newMockStore(t)

	reportID := uuid.New()
	reporterID := uuid.New()
	due := time.Now().Add(-time.Hour)

	mock.ExpectQuery(`SELECT (.+) FROM "reports"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "reporter_id", "target_type", "status", "notify_reporter_at", "reporter_notified"}).
			AddRow(reportID, reporterID, "post", "resolved", due, false))

	reports, err := store.DueForReporterNotice(context.Background(), time.Now(), 100)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, reportID, reports[0].ID)
	assert.Equal(t, models.StatusResolved, reports[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClaimReporterNotice(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reports"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	claimed, err := store.ClaimReporterNotice(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, claimed)

	// Already claimed: zero rows, no error.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "reports"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	claimed, err = store.ClaimReporterNotice(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, claimed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
