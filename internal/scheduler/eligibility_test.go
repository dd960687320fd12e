package scheduler

import (
	"fmt"
	"testing"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testStaffID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func boolPtr(b bool) *bool { return &b }

func datePtr(t time.Time) *time.Time { return &t }

func TestEvaluator_Evaluate(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	staffID := testStaffID(1)
	staff := entity.Staff{
		ID:              staffID,
		CareerStartDate: time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC), // 5 years as of asOf
	}

	rooms := []entity.OperatingRoom{{ID: 1, Name: "OR-1"}, {ID: 2, Name: "OR-2"}}
	quals := []entity.Qualification{
		{ID: 1, Code: "ACLS", Mandatory: true, IsActive: boolPtr(true)},
		{ID: 2, Code: "PERI", Mandatory: true, RequiredExperienceYears: 3, IsActive: boolPtr(true),
			ApplicableRooms: []entity.OperatingRoom{{ID: 2}}},
		{ID: 3, Code: "LANG", Mandatory: false, IsActive: boolPtr(true)},
	}

	testCases := []struct {
		name         string
		held         []entity.StaffQualification
		roomID       int
		wantEligible bool
		wantReason   string
	}{
		{
			name:         "missing mandatory qualification",
			held:         nil,
			roomID:       1,
			wantEligible: false,
			wantReason:   "missing qualification ACLS",
		},
		{
			name: "expired mandatory qualification",
			held: []entity.StaffQualification{
				{StaffID: staffID, QualificationID: 1, Status: entity.StaffQualificationStatusActive,
					ExpiryDate: datePtr(asOf.AddDate(0, -1, 0))},
			},
			roomID:       1,
			wantEligible: false,
			wantReason:   "qualification ACLS expired",
		},
		{
			name: "revoked record does not count as held",
			held: []entity.StaffQualification{
				{StaffID: staffID, QualificationID: 1, Status: entity.StaffQualificationStatusRevoked},
			},
			roomID:       1,
			wantEligible: false,
			wantReason:   "missing qualification ACLS",
		},
		{
			name: "all requirements met",
			held: []entity.StaffQualification{
				{StaffID: staffID, QualificationID: 1, Status: entity.StaffQualificationStatusActive},
			},
			roomID:       1,
			wantEligible: true,
			wantReason:   ReasonAllRequirementsMet,
		},
		{
			name: "room scoped qualification only blocks its room",
			held: []entity.StaffQualification{
				{StaffID: staffID, QualificationID: 1, Status: entity.StaffQualificationStatusActive},
			},
			roomID:       2,
			wantEligible: false,
			wantReason:   "missing qualification PERI",
		},
		{
			name: "advisory qualification never blocks",
			held: []entity.StaffQualification{
				{StaffID: staffID, QualificationID: 1, Status: entity.StaffQualificationStatusActive},
				{StaffID: staffID, QualificationID: 2, Status: entity.StaffQualificationStatusActive},
			},
			roomID:       2,
			wantEligible: true,
			wantReason:   ReasonAllRequirementsMet,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			idx := NewQualificationIndex(quals, rooms, tc.held)
			result := NewEvaluator(idx).Evaluate(&staff, tc.roomID, asOf)

			assert.Equal(t, tc.wantEligible, result.Eligible)
			assert.Equal(t, tc.wantReason, result.Reason)
			assert.Equal(t, staffID, result.StaffID)
			assert.Equal(t, tc.roomID, result.RoomID)
		})
	}
}

func TestEvaluator_ExperienceCheck(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	staffID := testStaffID(2)
	junior := entity.Staff{
		ID:              staffID,
		CareerStartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), // 1 year
	}

	rooms := []entity.OperatingRoom{{ID: 2, Name: "OR-2"}}
	quals := []entity.Qualification{
		{ID: 2, Code: "PERI", Mandatory: true, RequiredExperienceYears: 3, IsActive: boolPtr(true)},
	}
	held := []entity.StaffQualification{
		{StaffID: staffID, QualificationID: 2, Status: entity.StaffQualificationStatusActive},
	}

	idx := NewQualificationIndex(quals, rooms, held)
	result := NewEvaluator(idx).Evaluate(&junior, 2, asOf)

	assert.False(t, result.Eligible)
	assert.Equal(t, "qualification PERI requires 3 years experience, staff has 1", result.Reason)
}

func TestEvaluator_FirstFailureByAscendingQualificationID(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	staff := entity.Staff{ID: testStaffID(3), CareerStartDate: asOf.AddDate(-10, 0, 0)}

	rooms := []entity.OperatingRoom{{ID: 1}}
	// Both mandatory and both missing; the lower id must name the reason,
	// regardless of input order.
	quals := []entity.Qualification{
		{ID: 9, Code: "LATE", Mandatory: true, IsActive: boolPtr(true)},
		{ID: 4, Code: "EARLY", Mandatory: true, IsActive: boolPtr(true)},
	}

	idx := NewQualificationIndex(quals, rooms, nil)
	result := NewEvaluator(idx).Evaluate(&staff, 1, asOf)

	assert.False(t, result.Eligible)
	assert.Equal(t, "missing qualification EARLY", result.Reason)
}

func TestEvaluator_DeactivatedQualificationIgnored(t *testing.T) {
	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	staff := entity.Staff{ID: testStaffID(4), CareerStartDate: asOf.AddDate(-10, 0, 0)}

	rooms := []entity.OperatingRoom{{ID: 1}}
	quals := []entity.Qualification{
		{ID: 1, Code: "OLD", Mandatory: true, IsActive: boolPtr(false)},
	}

	idx := NewQualificationIndex(quals, rooms, nil)
	result := NewEvaluator(idx).Evaluate(&staff, 1, asOf)

	assert.True(t, result.Eligible)
}
