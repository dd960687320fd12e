package scheduler

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RunState tracks where a scheduling run is in its lifecycle.
type RunState string

const (
	StateCollecting RunState = "collecting"
	StateValidating RunState = "validating"
	StateAssigning  RunState = "assigning"
	StateResolving  RunState = "resolving"
	StatePublished  RunState = "published"
	StateFailed     RunState = "failed"
)

// FailureKind classifies why a run failed.
type FailureKind string

const (
	FailureUncoverableSlot     FailureKind = "uncoverable_slot"
	FailureInvalidPin          FailureKind = "invalid_pin"
	FailureConstraintViolation FailureKind = "constraint_violation"
)

// Failure is one structured reason surfaced to the admin. Runs never fail
// with a bare message.
type Failure struct {
	Kind    FailureKind `json:"kind"`
	SlotID  int         `json:"slot_id"`
	StaffID *uuid.UUID  `json:"staff_id,omitempty"`
	Reason  string      `json:"reason"`
}

// Policy holds the configurable scheduling constraints.
type Policy struct {
	// MaxConsecutiveDays caps calendar days in a row with at least one duty.
	// 0 disables the check.
	MaxConsecutiveDays int
	// StackableDutyTypes maps duty type ids that may share a date for one
	// staff member. Two duties on one date are allowed only if both are
	// stackable.
	StackableDutyTypes map[int]bool
}

// ProposedAssignment is one engine output row, not yet persisted.
type ProposedAssignment struct {
	SlotID  int
	StaffID uuid.UUID
	Pinned  bool
}

// Input is everything a run needs, gathered up front so the engine itself
// touches no storage.
type Input struct {
	// Slots requiring coverage in the range, with RoomID/DutyTypeID/Date set.
	Slots []entity.DutySlot
	// Staff is the active pool.
	Staff []entity.Staff
	// Pins are admin-fixed assignments for slots inside the range.
	Pins []entity.Assignment
	// History holds assignments outside the range (with DutySlot loaded) so
	// the consecutive-day check sees duties immediately before and after it.
	History   []entity.Assignment
	Evaluator *Evaluator
	Tracker   *BalanceTracker
	Policy    Policy
}

// Result is the complete outcome of one run. Assignments are only meaningful
// when State is StatePublished.
type Result struct {
	State       RunState
	Assignments []ProposedAssignment
	Failures    []Failure
}

// Engine produces a complete, valid assignment set for a date range or a
// structured failure. Deterministic: identical inputs yield identical output.
type Engine struct {
	log *logrus.Logger
}

func NewEngine(log *logrus.Logger) *Engine {
	return &Engine{log: log}
}

const dateLayout = "2006-01-02"

// run holds the mutable state of one scheduling run.
type run struct {
	in    Input
	slots []entity.DutySlot
	staff []entity.Staff

	// slot id -> staff ids eligible for the slot's room on its date, in staff order
	eligible map[int][]uuid.UUID
	// slot id -> pinned staff
	pinBySlot map[int]uuid.UUID
	// slot id -> assigned staff
	assigned map[int]uuid.UUID
	// slot id -> slot, for lookups during repair
	slotByID map[int]*entity.DutySlot
	// staff id -> assignments made in this run
	inRun map[uuid.UUID]int
	// staff id -> date -> duty type ids worked that date (pins + in-run)
	duties map[uuid.UUID]map[string][]int
	// staff id -> dates worked before/after the range, fixed
	historyDates map[uuid.UUID]map[string]bool
	// staff id -> date -> pinned here
	pinnedOn map[uuid.UUID]map[string]bool

	failures []Failure
}

// Run executes the state machine: collect, validate, assign, resolve, done.
// The context is checked once per slot so an admin can abort a long run;
// nothing is published until the caller persists the result, so aborting is
// always safe.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	r := e.collect(in)

	if failures := r.validate(); len(failures) > 0 {
		e.log.Warnf("Scheduling run infeasible: %d failures", len(failures))
		return &Result{State: StateFailed, Failures: failures}, nil
	}

	unfilled, err := r.assign(ctx)
	if err != nil {
		return nil, err
	}

	if err := r.resolve(ctx, unfilled); err != nil {
		return nil, err
	}
	if len(r.failures) > 0 {
		e.log.Warnf("Scheduling run failed during conflict resolution: %d failures", len(r.failures))
		return &Result{State: StateFailed, Failures: r.failures}, nil
	}

	result := &Result{State: StatePublished}
	for i := range r.slots {
		slot := &r.slots[i]
		staffID, ok := r.assigned[slot.ID]
		if !ok {
			// resolve left the slot open without reporting it; surface it here
			return &Result{State: StateFailed, Failures: []Failure{{
				Kind:   FailureUncoverableSlot,
				SlotID: slot.ID,
				Reason: fmt.Sprintf("uncoverable slot: %d", slot.ID),
			}}}, nil
		}
		_, pinned := r.pinBySlot[slot.ID]
		result.Assignments = append(result.Assignments, ProposedAssignment{
			SlotID:  slot.ID,
			StaffID: staffID,
			Pinned:  pinned,
		})
	}

	e.log.Infof("Scheduling run assigned %d slots", len(result.Assignments))
	return result, nil
}

// collect sorts the inputs into deterministic order and seeds run state from
// history and pins.
func (e *Engine) collect(in Input) *run {
	r := &run{
		in:           in,
		slots:        append([]entity.DutySlot(nil), in.Slots...),
		staff:        append([]entity.Staff(nil), in.Staff...),
		eligible:     make(map[int][]uuid.UUID),
		pinBySlot:    make(map[int]uuid.UUID),
		assigned:     make(map[int]uuid.UUID),
		slotByID:     make(map[int]*entity.DutySlot),
		inRun:        make(map[uuid.UUID]int),
		duties:       make(map[uuid.UUID]map[string][]int),
		historyDates: make(map[uuid.UUID]map[string]bool),
		pinnedOn:     make(map[uuid.UUID]map[string]bool),
	}

	// Ascending date, room id, duty type id: reproducible output for fixed input.
	sort.Slice(r.slots, func(i, j int) bool {
		a, b := &r.slots[i], &r.slots[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.RoomID != b.RoomID {
			return a.RoomID < b.RoomID
		}
		return a.DutyTypeID < b.DutyTypeID
	})
	sort.Slice(r.staff, func(i, j int) bool {
		return r.staff[i].ID.String() < r.staff[j].ID.String()
	})
	for i := range r.slots {
		r.slotByID[r.slots[i].ID] = &r.slots[i]
	}

	for i := range in.History {
		h := &in.History[i]
		dates, ok := r.historyDates[h.StaffID]
		if !ok {
			dates = make(map[string]bool)
			r.historyDates[h.StaffID] = dates
		}
		dates[h.DutySlot.Date.Format(dateLayout)] = true
	}

	for i := range in.Pins {
		pin := &in.Pins[i]
		slot, ok := r.slotByID[pin.DutySlotID]
		if !ok {
			continue
		}
		r.pinBySlot[slot.ID] = pin.StaffID
		day := slot.Date.Format(dateLayout)
		if r.pinnedOn[pin.StaffID] == nil {
			r.pinnedOn[pin.StaffID] = make(map[string]bool)
		}
		r.pinnedOn[pin.StaffID][day] = true
	}

	return r
}

// validate computes per-slot eligibility and fails fast on any slot with no
// possible coverage and on any pin whose staff is no longer eligible.
func (r *run) validate() []Failure {
	var failures []Failure

	for i := range r.slots {
		slot := &r.slots[i]
		day := slot.Date.Format(dateLayout)

		var eligible []uuid.UUID
		available := 0
		for j := range r.staff {
			staff := &r.staff[j]
			res := r.in.Evaluator.Evaluate(staff, slot.RoomID, slot.Date)
			if !res.Eligible {
				continue
			}
			eligible = append(eligible, staff.ID)
			// A staff member pinned elsewhere on this date cannot cover this
			// slot unless both duty types are stackable; for feasibility we
			// only need a conservative count.
			if pinnedStaff, ok := r.pinBySlot[slot.ID]; ok && pinnedStaff == staff.ID {
				available++
				continue
			}
			if r.pinnedOn[staff.ID][day] && !r.in.Policy.StackableDutyTypes[slot.DutyTypeID] {
				continue
			}
			available++
		}
		r.eligible[slot.ID] = eligible

		if pinnedStaff, ok := r.pinBySlot[slot.ID]; ok {
			if !containsID(eligible, pinnedStaff) {
				staffID := pinnedStaff
				failures = append(failures, Failure{
					Kind:    FailureInvalidPin,
					SlotID:  slot.ID,
					StaffID: &staffID,
					Reason:  fmt.Sprintf("pinned staff no longer eligible for slot %d", slot.ID),
				})
			}
			continue
		}

		if available == 0 {
			failures = append(failures, Failure{
				Kind:   FailureUncoverableSlot,
				SlotID: slot.ID,
				Reason: fmt.Sprintf("uncoverable slot: %d", slot.ID),
			})
		}
	}

	return failures
}

// assign walks slots in order, honoring pins first, then ranking candidates
// by fairness. Slots left open go to the resolve pass.
func (r *run) assign(ctx context.Context) ([]int, error) {
	// Pins are fixed constraints: place them before anything else so earlier
	// slots cannot steal a pinned staff member's date.
	for i := range r.slots {
		slot := &r.slots[i]
		if staffID, ok := r.pinBySlot[slot.ID]; ok {
			r.place(slot, staffID)
		}
	}

	var unfilled []int
	for i := range r.slots {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		slot := &r.slots[i]
		if _, done := r.assigned[slot.ID]; done {
			continue
		}

		staffID, ok := r.pickCandidate(slot, uuid.Nil)
		if !ok {
			unfilled = append(unfilled, slot.ID)
			continue
		}
		r.place(slot, staffID)
	}

	return unfilled, nil
}

// resolve is the second pass: it repairs slots the greedy pass left open by
// moving a flexible assignee out of a slot that has an alternative candidate,
// then re-checks the consecutive-day constraint over the final set.
func (r *run) resolve(ctx context.Context, unfilled []int) error {
	for _, slotID := range unfilled {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		slot := r.slotByID[slotID]

		// Availability may have changed after an earlier repair.
		if staffID, ok := r.pickCandidate(slot, uuid.Nil); ok {
			r.place(slot, staffID)
			continue
		}

		if !r.repair(slot) {
			r.failures = append(r.failures, Failure{
				Kind:   FailureUncoverableSlot,
				SlotID: slot.ID,
				Reason: fmt.Sprintf("uncoverable slot: %d (no reassignment frees an eligible staff member)", slot.ID),
			})
		}
	}

	if len(r.failures) == 0 {
		r.checkConsecutive()
	}
	return nil
}

// repair tries to free an eligible-but-busy staff member for the open slot by
// handing their current slot to an alternative candidate.
func (r *run) repair(open *entity.DutySlot) bool {
	for _, donorID := range r.eligible[open.ID] {
		// Walk the donor's in-run slots in slot order for determinism.
		for i := range r.slots {
			held := &r.slots[i]
			if r.assigned[held.ID] != donorID {
				continue
			}
			if _, pinned := r.pinBySlot[held.ID]; pinned {
				continue
			}

			r.unplace(held, donorID)
			if !r.available(donorID, open) {
				r.place(held, donorID)
				continue
			}

			replacementID, ok := r.pickCandidate(held, donorID)
			if !ok {
				r.place(held, donorID)
				continue
			}

			r.place(held, replacementID)
			r.place(open, donorID)
			return true
		}
	}
	return false
}

// checkConsecutive verifies the max-consecutive-days cap over the final set,
// trying to reassign the offending non-pinned duty before failing the run.
// Pinned duties are admin-forced and never reported as violations on their own.
func (r *run) checkConsecutive() {
	if r.in.Policy.MaxConsecutiveDays <= 0 {
		return
	}

	for i := range r.staff {
		staffID := r.staff[i].ID
		for {
			slot := r.findStreakViolation(staffID)
			if slot == nil {
				break
			}

			r.unplace(slot, staffID)
			replacementID, ok := r.pickCandidate(slot, staffID)
			if !ok {
				r.place(slot, staffID)
				id := staffID
				r.failures = append(r.failures, Failure{
					Kind:    FailureConstraintViolation,
					SlotID:  slot.ID,
					StaffID: &id,
					Reason:  fmt.Sprintf("staff exceeds %d consecutive duty days at slot %d and no replacement is available", r.in.Policy.MaxConsecutiveDays, slot.ID),
				})
				return
			}
			r.place(slot, replacementID)
		}
	}
}

// findStreakViolation returns the last non-pinned in-run slot inside a streak
// longer than the cap, or nil when the staff member is within policy.
func (r *run) findStreakViolation(staffID uuid.UUID) *entity.DutySlot {
	worked := r.workedDates(staffID)
	if len(worked) == 0 {
		return nil
	}

	max := r.in.Policy.MaxConsecutiveDays
	for i := len(r.slots) - 1; i >= 0; i-- {
		slot := &r.slots[i]
		if r.assigned[slot.ID] != staffID {
			continue
		}
		if _, pinned := r.pinBySlot[slot.ID]; pinned {
			continue
		}
		if streakLength(worked, slot.Date) > max {
			return slot
		}
	}
	return nil
}

// place records an assignment and all the bookkeeping hanging off it.
func (r *run) place(slot *entity.DutySlot, staffID uuid.UUID) {
	r.assigned[slot.ID] = staffID
	r.inRun[staffID]++
	r.in.Tracker.Record(staffID, slot.DutyTypeID)

	day := slot.Date.Format(dateLayout)
	if r.duties[staffID] == nil {
		r.duties[staffID] = make(map[string][]int)
	}
	r.duties[staffID][day] = append(r.duties[staffID][day], slot.DutyTypeID)
}

// unplace reverses place during repair.
func (r *run) unplace(slot *entity.DutySlot, staffID uuid.UUID) {
	delete(r.assigned, slot.ID)
	r.inRun[staffID]--
	r.in.Tracker.Unrecord(staffID, slot.DutyTypeID)

	day := slot.Date.Format(dateLayout)
	types := r.duties[staffID][day]
	for i, dt := range types {
		if dt == slot.DutyTypeID {
			r.duties[staffID][day] = append(types[:i], types[i+1:]...)
			break
		}
	}
	if len(r.duties[staffID][day]) == 0 {
		delete(r.duties[staffID], day)
	}
}

// pickCandidate returns the best available candidate for a slot: fairness
// score descending, then fewest in-run assignments, then staff id.
func (r *run) pickCandidate(slot *entity.DutySlot, exclude uuid.UUID) (uuid.UUID, bool) {
	var (
		best      uuid.UUID
		bestScore float64
		found     bool
	)

	for _, staffID := range r.eligible[slot.ID] {
		if staffID == exclude || !r.available(staffID, slot) {
			continue
		}

		score := r.in.Tracker.FairnessScore(staffID, slot.DutyTypeID)
		if !found {
			best, bestScore, found = staffID, score, true
			continue
		}
		if score > bestScore {
			best, bestScore = staffID, score
			continue
		}
		if score == bestScore {
			if r.inRun[staffID] < r.inRun[best] ||
				(r.inRun[staffID] == r.inRun[best] && staffID.String() < best.String()) {
				best = staffID
			}
		}
	}

	return best, found
}

// available checks everything except room eligibility: one duty per date
// unless stackable, pins elsewhere on the date, and the consecutive-day cap.
func (r *run) available(staffID uuid.UUID, slot *entity.DutySlot) bool {
	day := slot.Date.Format(dateLayout)

	for _, existing := range r.duties[staffID][day] {
		if !r.in.Policy.StackableDutyTypes[existing] || !r.in.Policy.StackableDutyTypes[slot.DutyTypeID] {
			return false
		}
	}

	if r.pinnedOn[staffID][day] {
		// Pinned on this date; only a stackable duty may be added, and the
		// duty-clash loop above already decided that.
		if len(r.duties[staffID][day]) == 0 && !r.in.Policy.StackableDutyTypes[slot.DutyTypeID] {
			return false
		}
	}

	if max := r.in.Policy.MaxConsecutiveDays; max > 0 {
		worked := r.workedDates(staffID)
		worked[day] = true
		if streakLength(worked, slot.Date) > max {
			return false
		}
	}

	return true
}

// workedDates merges fixed history dates with in-run duty dates.
func (r *run) workedDates(staffID uuid.UUID) map[string]bool {
	worked := make(map[string]bool, len(r.historyDates[staffID])+len(r.duties[staffID]))
	for day := range r.historyDates[staffID] {
		worked[day] = true
	}
	for day := range r.duties[staffID] {
		worked[day] = true
	}
	return worked
}

// streakLength counts the consecutive worked days through the given date.
func streakLength(worked map[string]bool, date time.Time) int {
	length := 1
	for d := date.AddDate(0, 0, -1); worked[d.Format(dateLayout)]; d = d.AddDate(0, 0, -1) {
		length++
	}
	for d := date.AddDate(0, 0, 1); worked[d.Format(dateLayout)]; d = d.AddDate(0, 0, 1) {
		length++
	}
	return length
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
