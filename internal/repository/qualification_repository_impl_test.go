package repository

import (
	"regexp"
	"testing"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestQualificationRepository_SaveUpdate(t *testing.T) {
	db, mock := newTestDB(t)

	isActive := true
	createdAt := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	// The full row is written back, so is_active and created_at must hold the
	// stored values, never a nil pointer or the zero time.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "qualifications" SET`)).
		WithArgs("ACLS", "Advanced Cardiac Life Support", "certification", true, 2, isActive, createdAt, sqlmock.AnyArg(), 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "qualification_rooms"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := NewQualificationRepository()
	err := repo.Save(db, &entity.Qualification{
		ID:                      42,
		Code:                    "ACLS",
		Name:                    "Advanced Cardiac Life Support",
		Category:                entity.QualificationCategoryCertification,
		Mandatory:               true,
		RequiredExperienceYears: 2,
		IsActive:                &isActive,
		CreatedAt:               createdAt,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQualificationRepository_Deactivate(t *testing.T) {
	testCases := []struct {
		name         string
		rowsAffected int64
	}{
		{name: "existing qualification retired", rowsAffected: 1},
		{name: "unknown id touches nothing", rowsAffected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := newTestDB(t)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta(`UPDATE "qualifications" SET`)).
				WillReturnResult(sqlmock.NewResult(0, tc.rowsAffected))
			mock.ExpectCommit()

			repo := NewQualificationRepository()
			affected, err := repo.Deactivate(db, 7)

			assert.NoError(t, err)
			assert.Equal(t, tc.rowsAffected, affected)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
