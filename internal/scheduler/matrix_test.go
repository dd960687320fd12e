package scheduler

import (
	"context"
	"testing"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatrix(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	rooms := []entity.OperatingRoom{{ID: 1, Name: "OR-1"}, {ID: 2, Name: "OR-2"}}
	quals := []entity.Qualification{
		{ID: 1, Code: "ACLS", Mandatory: true, IsActive: boolPtr(true),
			ApplicableRooms: []entity.OperatingRoom{{ID: 2}}},
	}

	qualified := entity.Staff{ID: testStaffID(1), CareerStartDate: asOf.AddDate(-5, 0, 0)}
	unqualified := entity.Staff{ID: testStaffID(2), CareerStartDate: asOf.AddDate(-5, 0, 0)}
	staff := []entity.Staff{qualified, unqualified}

	held := []entity.StaffQualification{
		{StaffID: qualified.ID, QualificationID: 1, Status: entity.StaffQualificationStatusActive},
	}

	ev := NewEvaluator(NewQualificationIndex(quals, rooms, held))

	matrix, err := BuildMatrix(context.Background(), ev, staff, rooms, asOf, 4)
	require.NoError(t, err)

	require.Len(t, matrix.StaffIDs, 2)
	require.Len(t, matrix.RoomIDs, 2)
	require.Len(t, matrix.Cells, 2)

	// Room 1 is unconstrained: everyone can work it.
	assert.True(t, matrix.Cells[qualified.ID][1].Eligible)
	assert.True(t, matrix.Cells[unqualified.ID][1].Eligible)

	// Room 2 requires ACLS.
	assert.True(t, matrix.Cells[qualified.ID][2].Eligible)
	assert.False(t, matrix.Cells[unqualified.ID][2].Eligible)
	assert.Equal(t, "missing qualification ACLS", matrix.Cells[unqualified.ID][2].Reason)
}

func TestBuildMatrix_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rooms := []entity.OperatingRoom{{ID: 1}}
	staff := []entity.Staff{{ID: testStaffID(1)}}
	ev := NewEvaluator(NewQualificationIndex(nil, rooms, nil))

	_, err := BuildMatrix(ctx, ev, staff, rooms, time.Now(), 2)
	assert.ErrorIs(t, err, context.Canceled)
}
