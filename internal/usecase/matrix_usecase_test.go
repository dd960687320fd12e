package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-duty-scheduler/config"
	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrixUsecase_GetKeysCellsByID(t *testing.T) {
	staffID := uuid.New()
	active := true
	staff := []entity.Staff{{
		ID:              staffID,
		FullName:        "Dr. Sari Wijaya",
		CareerStartDate: time.Date(2015, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:        &active,
	}}
	rooms := []entity.OperatingRoom{
		{ID: 5, Name: "OR-5"},
		{ID: 9, Name: "OR-9"},
	}

	usecase := NewMatrixUsecase(
		newTestDB(t),
		testLogger(),
		config.SchedulerConfig{MatrixWorkers: 2},
		&staffRepoStub{allActive: staff},
		&roomRepoStub{rooms: rooms},
		&qualificationRepoStub{},
		&staffQualRepoStub{},
	)

	response, err := usecase.Get(context.Background(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "2026-03-01", response.AsOf)

	// Consumers join cells against staff and room records, so the grid is
	// keyed by identifiers rather than display names.
	row, ok := response.Matrix[staffID.String()]
	require.True(t, ok)
	require.Len(t, row, 2)
	for _, key := range []string{"5", "9"} {
		cell, ok := row[key]
		require.True(t, ok, "missing cell for room %s", key)
		assert.True(t, cell.CanWork)
	}
}
