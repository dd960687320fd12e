package repository

import (
	"regexp"
	"testing"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// A helper function to create a mock database connection.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestAssignmentRepository_CreatePinned(t *testing.T) {
	staffID := uuid.New()

	testCases := []struct {
		name             string
		mockExpectations func(mock sqlmock.Sqlmock)
		expectedErr      error
	}{
		{
			name: "slot open, pin inserted",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "assignments"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
				mock.ExpectCommit()
			},
			expectedErr: nil,
		},
		{
			name: "slot already filled, conflict",
			mockExpectations: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				// ON CONFLICT DO NOTHING returns no row for a filled slot.
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "assignments"`)).
					WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectCommit()
			},
			expectedErr: domainRepo.ErrSlotConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newTestDB(t)
			tc.mockExpectations(mock)

			repo := NewAssignmentRepository()
			err := repo.CreatePinned(db, &entity.Assignment{
				DutySlotID: 7,
				StaffID:    staffID,
			})

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAssignmentRepository_PublishRun(t *testing.T) {
	runID := uuid.New()
	staffID := uuid.New()
	rangeStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2026, 3, 7, 0, 0, 0, 0, time.UTC)

	run := func() *entity.ScheduleRun {
		return &entity.ScheduleRun{
			ID:         runID,
			RangeStart: rangeStart,
			RangeEnd:   rangeEnd,
			Status:     entity.ScheduleRunStatusPublished,
		}
	}
	assignments := func() []entity.Assignment {
		return []entity.Assignment{
			{DutySlotID: 1, StaffID: staffID, RunID: &runID},
			{DutySlotID: 2, StaffID: staffID, RunID: &runID},
		}
	}

	t.Run("all slots open, run published", func(t *testing.T) {
		db, mock := newTestDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "schedule_runs"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "assignments"`)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "assignments"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).
				AddRow(uuid.New()).
				AddRow(uuid.New()))
		mock.ExpectCommit()

		repo := NewAssignmentRepository()
		err := repo.PublishRun(db, run(), assignments())

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slot filled between validation and commit, rolls back", func(t *testing.T) {
		db, mock := newTestDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "schedule_runs"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "assignments"`)).
			WillReturnResult(sqlmock.NewResult(0, 2))
		// Only one of the two conditional inserts lands.
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "assignments"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectRollback()

		repo := NewAssignmentRepository()
		err := repo.PublishRun(db, run(), assignments())

		assert.ErrorIs(t, err, domainRepo.ErrSlotConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("pinned assignments are not rewritten", func(t *testing.T) {
		db, mock := newTestDB(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "schedule_runs"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "assignments"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		pinnedOnly := []entity.Assignment{
			{DutySlotID: 1, StaffID: staffID, RunID: &runID, Pinned: true},
		}

		repo := NewAssignmentRepository()
		err := repo.PublishRun(db, run(), pinnedOnly)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
