package scheduler

import (
	"testing"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestBalanceTracker_FairnessScore(t *testing.T) {
	staff := []entity.Staff{
		{ID: testStaffID(1)},
		{ID: testStaffID(2)},
		{ID: testStaffID(3)},
	}
	// Staff 1 already worked two night duties, staff 2 one, staff 3 none.
	history := []entity.Assignment{
		{StaffID: staff[0].ID, DutySlot: entity.DutySlot{DutyTypeID: 2}},
		{StaffID: staff[0].ID, DutySlot: entity.DutySlot{DutyTypeID: 2}},
		{StaffID: staff[1].ID, DutySlot: entity.DutySlot{DutyTypeID: 2}},
	}

	tracker := NewBalanceTracker(staff, history)

	// Department average for duty type 2 is 1.0.
	assert.InDelta(t, -1.0, tracker.FairnessScore(staff[0].ID, 2), 1e-9)
	assert.InDelta(t, 0.0, tracker.FairnessScore(staff[1].ID, 2), 1e-9)
	assert.InDelta(t, 1.0, tracker.FairnessScore(staff[2].ID, 2), 1e-9)

	counts := tracker.History(staff[0].ID)
	assert.Equal(t, 2, counts[2])
}

func TestBalanceTracker_RecordAndUnrecord(t *testing.T) {
	staff := []entity.Staff{{ID: testStaffID(1)}, {ID: testStaffID(2)}}
	tracker := NewBalanceTracker(staff, nil)

	tracker.Record(staff[0].ID, 1)
	assert.Equal(t, 1, tracker.History(staff[0].ID)[1])
	assert.InDelta(t, -0.5, tracker.FairnessScore(staff[0].ID, 1), 1e-9)

	tracker.Unrecord(staff[0].ID, 1)
	assert.Equal(t, 0, tracker.History(staff[0].ID)[1])
	assert.InDelta(t, 0.0, tracker.FairnessScore(staff[0].ID, 1), 1e-9)
}

func TestBalanceTracker_Variance(t *testing.T) {
	staff := []entity.Staff{{ID: testStaffID(1)}, {ID: testStaffID(2)}}
	tracker := NewBalanceTracker(staff, nil)

	assert.InDelta(t, 0.0, tracker.Variance(1), 1e-9)

	tracker.Record(staff[0].ID, 1)
	tracker.Record(staff[0].ID, 1)
	// Counts 2 and 0, mean 1, variance 1.
	assert.InDelta(t, 1.0, tracker.Variance(1), 1e-9)

	tracker.Record(staff[1].ID, 1)
	tracker.Record(staff[1].ID, 1)
	assert.InDelta(t, 0.0, tracker.Variance(1), 1e-9)
}
