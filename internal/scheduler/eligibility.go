package scheduler

import (
	"fmt"
	"sort"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
)

// ReasonAllRequirementsMet is the reason attached to every eligible result.
const ReasonAllRequirementsMet = "all requirements met"

// EligibilityResult is the outcome of checking one staff member against one
// room. Derived data, never persisted.
type EligibilityResult struct {
	StaffID  uuid.UUID `json:"staff_id"`
	RoomID   int       `json:"room_id"`
	Eligible bool      `json:"eligible"`
	Reason   string    `json:"reason"`
}

// QualificationIndex precomputes the lookups the evaluator needs so that a
// matrix build does not rescan the qualification tables per cell. Read-only
// after construction.
type QualificationIndex struct {
	// mandatory, active qualifications constraining each room, ascending by id
	roomQuals map[int][]entity.Qualification
	// every held record per staff member and qualification
	held map[uuid.UUID]map[int][]entity.StaffQualification
}

// NewQualificationIndex builds the index from reference data. Inactive and
// advisory (non-mandatory) qualifications never block placement and are left
// out of the per-room requirement lists.
func NewQualificationIndex(quals []entity.Qualification, rooms []entity.OperatingRoom, held []entity.StaffQualification) *QualificationIndex {
	idx := &QualificationIndex{
		roomQuals: make(map[int][]entity.Qualification, len(rooms)),
		held:      make(map[uuid.UUID]map[int][]entity.StaffQualification),
	}

	for _, room := range rooms {
		var required []entity.Qualification
		for _, q := range quals {
			if !q.Mandatory {
				continue
			}
			if q.IsActive != nil && !*q.IsActive {
				continue
			}
			if q.AppliesToRoom(room.ID) {
				required = append(required, q)
			}
		}
		// Deterministic failure order: first missing qualification by ascending id.
		sort.Slice(required, func(i, j int) bool { return required[i].ID < required[j].ID })
		idx.roomQuals[room.ID] = required
	}

	for _, sq := range held {
		byQual, ok := idx.held[sq.StaffID]
		if !ok {
			byQual = make(map[int][]entity.StaffQualification)
			idx.held[sq.StaffID] = byQual
		}
		byQual[sq.QualificationID] = append(byQual[sq.QualificationID], sq)
	}

	return idx
}

// Evaluator decides whether a staff member may work a room as of a date.
// Pure and safe for concurrent use.
type Evaluator struct {
	idx *QualificationIndex
}

func NewEvaluator(idx *QualificationIndex) *Evaluator {
	return &Evaluator{idx: idx}
}

// Evaluate fails closed: the first mandatory qualification (by ascending id)
// that is missing, expired, or under-experienced produces the failure reason.
func (e *Evaluator) Evaluate(staff *entity.Staff, roomID int, asOf time.Time) EligibilityResult {
	result := EligibilityResult{StaffID: staff.ID, RoomID: roomID}

	for _, q := range e.idx.roomQuals[roomID] {
		records := e.idx.held[staff.ID][q.ID]

		var active, expired bool
		for i := range records {
			if records[i].ActiveAsOf(asOf) {
				active = true
				break
			}
			if records[i].ExpiredAsOf(asOf) {
				expired = true
			}
		}

		if !active {
			if expired {
				result.Reason = fmt.Sprintf("qualification %s expired", q.Code)
			} else {
				result.Reason = fmt.Sprintf("missing qualification %s", q.Code)
			}
			return result
		}

		if years := staff.ExperienceYears(asOf); years < q.RequiredExperienceYears {
			result.Reason = fmt.Sprintf("qualification %s requires %d years experience, staff has %d", q.Code, q.RequiredExperienceYears, years)
			return result
		}
	}

	result.Eligible = true
	result.Reason = ReasonAllRequirementsMet
	return result
}
