package scheduler

import (
	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// BalanceTracker aggregates historical duty counts per staff member and duty
// type over the trailing window, and is updated incrementally as a run
// assigns. Not safe for concurrent use; each run owns its own tracker.
type BalanceTracker struct {
	counts map[uuid.UUID]map[int]int
	totals map[int]int
	pool   int
}

// NewBalanceTracker seeds the tracker from window history. Assignments must
// have their DutySlot loaded so the duty type is known. The staff pool size,
// not just the set of staff with history, is the denominator for the
// department average: staff with zero duties pull the average down.
func NewBalanceTracker(staff []entity.Staff, history []entity.Assignment) *BalanceTracker {
	t := &BalanceTracker{
		counts: make(map[uuid.UUID]map[int]int, len(staff)),
		totals: make(map[int]int),
		pool:   len(staff),
	}
	for _, s := range staff {
		t.counts[s.ID] = make(map[int]int)
	}
	for i := range history {
		t.Record(history[i].StaffID, history[i].DutySlot.DutyTypeID)
	}
	return t
}

// History returns a copy of the per-duty-type counts for one staff member.
func (t *BalanceTracker) History(staffID uuid.UUID) map[int]int {
	counts := make(map[int]int, len(t.counts[staffID]))
	for dutyTypeID, n := range t.counts[staffID] {
		counts[dutyTypeID] = n
	}
	return counts
}

// FairnessScore is departmentAvgCount(dutyType) - staffCount(dutyType).
// Higher means the staff member is more due to receive this duty type next.
func (t *BalanceTracker) FairnessScore(staffID uuid.UUID, dutyTypeID int) float64 {
	if t.pool == 0 {
		return 0
	}
	avg := float64(t.totals[dutyTypeID]) / float64(t.pool)
	return avg - float64(t.counts[staffID][dutyTypeID])
}

// Record counts a new assignment of dutyTypeID to staffID.
func (t *BalanceTracker) Record(staffID uuid.UUID, dutyTypeID int) {
	byType, ok := t.counts[staffID]
	if !ok {
		byType = make(map[int]int)
		t.counts[staffID] = byType
	}
	byType[dutyTypeID]++
	t.totals[dutyTypeID]++
}

// Unrecord reverses a Record, used when the repair pass moves an assignment.
func (t *BalanceTracker) Unrecord(staffID uuid.UUID, dutyTypeID int) {
	if byType, ok := t.counts[staffID]; ok && byType[dutyTypeID] > 0 {
		byType[dutyTypeID]--
		t.totals[dutyTypeID]--
	}
}

// Variance returns the population variance of per-staff counts for one duty
// type across the whole pool.
func (t *BalanceTracker) Variance(dutyTypeID int) float64 {
	if t.pool == 0 {
		return 0
	}
	mean := float64(t.totals[dutyTypeID]) / float64(t.pool)

	var sum float64
	for _, byType := range t.counts {
		diff := float64(byType[dutyTypeID]) - mean
		sum += diff * diff
	}
	return sum / float64(t.pool)
}
