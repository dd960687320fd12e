package scheduler

import (
	"context"
	"testing"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// openEvaluator returns an evaluator with no mandatory qualifications:
// everyone is eligible everywhere.
func openEvaluator(rooms []entity.OperatingRoom) *Evaluator {
	return NewEvaluator(NewQualificationIndex(nil, rooms, nil))
}

func slot(id, roomID, dutyTypeID int, date time.Time) entity.DutySlot {
	return entity.DutySlot{ID: id, RoomID: roomID, DutyTypeID: dutyTypeID, Date: date}
}

func staffPool(n int) []entity.Staff {
	pool := make([]entity.Staff, n)
	for i := range pool {
		pool[i] = entity.Staff{ID: testStaffID(i + 1), CareerStartDate: testDate.AddDate(-10, 0, 0)}
	}
	return pool
}

func runEngine(t *testing.T, in Input) *Result {
	t.Helper()
	result, err := NewEngine(testLogger()).Run(context.Background(), in)
	require.NoError(t, err)
	return result
}

func TestEngine_Deterministic(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}, {ID: 2}}
	staff := staffPool(4)
	slots := []entity.DutySlot{
		slot(1, 1, 1, testDate),
		slot(2, 2, 1, testDate),
		slot(3, 1, 1, testDate.AddDate(0, 0, 1)),
		slot(4, 2, 1, testDate.AddDate(0, 0, 1)),
	}

	newInput := func() Input {
		return Input{
			Slots:     slots,
			Staff:     staff,
			Evaluator: openEvaluator(rooms),
			Tracker:   NewBalanceTracker(staff, nil),
			Policy:    Policy{},
		}
	}

	first := runEngine(t, newInput())
	second := runEngine(t, newInput())

	require.Equal(t, StatePublished, first.State)
	assert.Equal(t, first.Assignments, second.Assignments)
}

func TestEngine_NoDoubleBooking(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}, {ID: 2}, {ID: 3}}
	staff := staffPool(3)
	slots := []entity.DutySlot{
		slot(1, 1, 1, testDate),
		slot(2, 2, 1, testDate),
		slot(3, 3, 1, testDate),
	}

	result := runEngine(t, Input{
		Slots:     slots,
		Staff:     staff,
		Evaluator: openEvaluator(rooms),
		Tracker:   NewBalanceTracker(staff, nil),
	})

	require.Equal(t, StatePublished, result.State)
	require.Len(t, result.Assignments, 3)

	seenSlots := make(map[int]bool)
	seenStaff := make(map[uuid.UUID]bool)
	for _, a := range result.Assignments {
		assert.False(t, seenSlots[a.SlotID], "slot %d assigned twice", a.SlotID)
		assert.False(t, seenStaff[a.StaffID], "staff %s double-booked on one date", a.StaffID)
		seenSlots[a.SlotID] = true
		seenStaff[a.StaffID] = true
	}
}

func TestEngine_StackableDutyTypesShareADate(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}}
	staff := staffPool(1)
	slots := []entity.DutySlot{
		slot(1, 1, 1, testDate),
		slot(2, 1, 2, testDate),
	}

	in := Input{
		Slots:     slots,
		Staff:     staff,
		Evaluator: openEvaluator(rooms),
		Tracker:   NewBalanceTracker(staff, nil),
		Policy:    Policy{StackableDutyTypes: map[int]bool{1: true, 2: true}},
	}

	result := runEngine(t, in)
	require.Equal(t, StatePublished, result.State)
	require.Len(t, result.Assignments, 2)
	assert.Equal(t, result.Assignments[0].StaffID, result.Assignments[1].StaffID)
}

func TestEngine_UncoverableSlotFailsValidation(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}}
	quals := []entity.Qualification{
		{ID: 1, Code: "ACLS", Mandatory: true, IsActive: boolPtr(true)},
	}
	staff := staffPool(2) // nobody holds ACLS

	result := runEngine(t, Input{
		Slots:     []entity.DutySlot{slot(1, 1, 1, testDate)},
		Staff:     staff,
		Evaluator: NewEvaluator(NewQualificationIndex(quals, rooms, nil)),
		Tracker:   NewBalanceTracker(staff, nil),
	})

	require.Equal(t, StateFailed, result.State)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, FailureUncoverableSlot, result.Failures[0].Kind)
	assert.Equal(t, 1, result.Failures[0].SlotID)
	assert.Empty(t, result.Assignments)
}

func TestEngine_PinsHonored(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}, {ID: 2}}
	staff := staffPool(2)
	slots := []entity.DutySlot{
		slot(1, 1, 1, testDate),
		slot(2, 2, 1, testDate),
	}
	// Pin the second staff member to slot 2.
	pins := []entity.Assignment{{DutySlotID: 2, StaffID: staff[1].ID, Pinned: true}}

	result := runEngine(t, Input{
		Slots:     slots,
		Staff:     staff,
		Pins:      pins,
		Evaluator: openEvaluator(rooms),
		Tracker:   NewBalanceTracker(staff, nil),
	})

	require.Equal(t, StatePublished, result.State)
	bysSlot := make(map[int]ProposedAssignment)
	for _, a := range result.Assignments {
		bysSlot[a.SlotID] = a
	}
	assert.Equal(t, staff[1].ID, bysSlot[2].StaffID)
	assert.True(t, bysSlot[2].Pinned)
	assert.Equal(t, staff[0].ID, bysSlot[1].StaffID)
}

func TestEngine_IneligiblePinFailsRun(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}}
	quals := []entity.Qualification{
		{ID: 1, Code: "ACLS", Mandatory: true, IsActive: boolPtr(true)},
	}
	staff := staffPool(2)
	// Only the first staff member holds ACLS, but the second is pinned.
	held := []entity.StaffQualification{
		{StaffID: staff[0].ID, QualificationID: 1, Status: entity.StaffQualificationStatusActive},
	}
	pins := []entity.Assignment{{DutySlotID: 1, StaffID: staff[1].ID, Pinned: true}}

	result := runEngine(t, Input{
		Slots:     []entity.DutySlot{slot(1, 1, 1, testDate)},
		Staff:     staff,
		Pins:      pins,
		Evaluator: NewEvaluator(NewQualificationIndex(quals, rooms, held)),
		Tracker:   NewBalanceTracker(staff, nil),
	})

	require.Equal(t, StateFailed, result.State)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, FailureInvalidPin, result.Failures[0].Kind)
	require.NotNil(t, result.Failures[0].StaffID)
	assert.Equal(t, staff[1].ID, *result.Failures[0].StaffID)
}

// The three-staff scenario: A can work both rooms, B only room 1, C neither.
// Whatever the greedy pass does, the repair pass must end with both slots
// covered: B in room 1 and A in room 2.
func TestEngine_RepairCoversScarceStaff(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}, {ID: 2}}
	quals := []entity.Qualification{
		// Room 2 requires CARD; room 1 requires BASE.
		{ID: 1, Code: "BASE", Mandatory: true, IsActive: boolPtr(true),
			ApplicableRooms: []entity.OperatingRoom{{ID: 1}}},
		{ID: 2, Code: "CARD", Mandatory: true, IsActive: boolPtr(true),
			ApplicableRooms: []entity.OperatingRoom{{ID: 2}}},
	}

	staffA := entity.Staff{ID: testStaffID(1), CareerStartDate: testDate.AddDate(-10, 0, 0)}
	staffB := entity.Staff{ID: testStaffID(2), CareerStartDate: testDate.AddDate(-10, 0, 0)}
	staffC := entity.Staff{ID: testStaffID(3), CareerStartDate: testDate.AddDate(-10, 0, 0)}
	staff := []entity.Staff{staffA, staffB, staffC}

	held := []entity.StaffQualification{
		{StaffID: staffA.ID, QualificationID: 1, Status: entity.StaffQualificationStatusActive},
		{StaffID: staffA.ID, QualificationID: 2, Status: entity.StaffQualificationStatusActive},
		{StaffID: staffB.ID, QualificationID: 1, Status: entity.StaffQualificationStatusActive},
	}

	result := runEngine(t, Input{
		Slots: []entity.DutySlot{
			slot(1, 1, 1, testDate),
			slot(2, 2, 1, testDate),
		},
		Staff:     staff,
		Evaluator: NewEvaluator(NewQualificationIndex(quals, rooms, held)),
		Tracker:   NewBalanceTracker(staff, nil),
	})

	require.Equal(t, StatePublished, result.State)
	require.Len(t, result.Assignments, 2)

	bySlot := make(map[int]uuid.UUID)
	for _, a := range result.Assignments {
		bySlot[a.SlotID] = a.StaffID
	}
	assert.Equal(t, staffB.ID, bySlot[1])
	assert.Equal(t, staffA.ID, bySlot[2])
}

func TestEngine_FairnessVarianceNeverIncreases(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}, {ID: 2}}
	staff := staffPool(4)

	// Lopsided history: staff 1 carries most of the night duties.
	var history []entity.Assignment
	for i := 0; i < 4; i++ {
		history = append(history, entity.Assignment{
			StaffID:  staff[0].ID,
			DutySlot: entity.DutySlot{DutyTypeID: 1},
		})
	}
	history = append(history, entity.Assignment{
		StaffID:  staff[1].ID,
		DutySlot: entity.DutySlot{DutyTypeID: 1},
	})

	tracker := NewBalanceTracker(staff, history)
	before := tracker.Variance(1)

	var slots []entity.DutySlot
	id := 1
	for day := 0; day < 3; day++ {
		for _, roomID := range []int{1, 2} {
			slots = append(slots, slot(id, roomID, 1, testDate.AddDate(0, 0, day)))
			id++
		}
	}

	result := runEngine(t, Input{
		Slots:     slots,
		Staff:     staff,
		Evaluator: openEvaluator(rooms),
		Tracker:   tracker,
	})

	require.Equal(t, StatePublished, result.State)
	assert.LessOrEqual(t, tracker.Variance(1), before)
}

func TestEngine_ConsecutiveDayCap(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}}
	staff := staffPool(2)

	// Staff 1 worked the three days right before the range.
	var history []entity.Assignment
	for i := 1; i <= 3; i++ {
		history = append(history, entity.Assignment{
			StaffID:  staff[0].ID,
			DutySlot: entity.DutySlot{DutyTypeID: 1, Date: testDate.AddDate(0, 0, -i)},
		})
	}

	result := runEngine(t, Input{
		Slots:     []entity.DutySlot{slot(1, 1, 1, testDate)},
		Staff:     staff,
		History:   history,
		Evaluator: openEvaluator(rooms),
		Tracker:   NewBalanceTracker(staff, nil),
		Policy:    Policy{MaxConsecutiveDays: 3},
	})

	require.Equal(t, StatePublished, result.State)
	require.Len(t, result.Assignments, 1)
	// Staff 1 would hit a 4-day streak, so staff 2 must take the duty even
	// though fairness alone would not distinguish them.
	assert.Equal(t, staff[1].ID, result.Assignments[0].StaffID)
}

func TestEngine_ConsecutiveDayCapUnsatisfiableFails(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}}
	staff := staffPool(1)

	var history []entity.Assignment
	for i := 1; i <= 3; i++ {
		history = append(history, entity.Assignment{
			StaffID:  staff[0].ID,
			DutySlot: entity.DutySlot{DutyTypeID: 1, Date: testDate.AddDate(0, 0, -i)},
		})
	}

	result := runEngine(t, Input{
		Slots:     []entity.DutySlot{slot(1, 1, 1, testDate)},
		Staff:     staff,
		History:   history,
		Evaluator: openEvaluator(rooms),
		Tracker:   NewBalanceTracker(staff, nil),
		Policy:    Policy{MaxConsecutiveDays: 3},
	})

	require.Equal(t, StateFailed, result.State)
	require.NotEmpty(t, result.Failures)
	assert.Equal(t, FailureUncoverableSlot, result.Failures[0].Kind)
}

func TestEngine_Cancellation(t *testing.T) {
	rooms := []entity.OperatingRoom{{ID: 1}}
	staff := staffPool(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine(testLogger()).Run(ctx, Input{
		Slots:     []entity.DutySlot{slot(1, 1, 1, testDate)},
		Staff:     staff,
		Evaluator: openEvaluator(rooms),
		Tracker:   NewBalanceTracker(staff, nil),
	})
	assert.ErrorIs(t, err, context.Canceled)
}
