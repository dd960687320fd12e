package repository

import (
	"fmt"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type assignmentRepository struct{}

func NewAssignmentRepository() domainRepo.AssignmentRepository {
	return &assignmentRepository{}
}

func (r *assignmentRepository) FindInRange(db *gorm.DB, start, end time.Time) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	err := db.Preload("DutySlot").
		Joins("JOIN duty_slots ON duty_slots.id = assignments.duty_slot_id").
		Where("duty_slots.date >= ? AND duty_slots.date <= ?", start, end).
		Order("assignments.duty_slot_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) FindPinnedInRange(db *gorm.DB, start, end time.Time) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	err := db.Preload("DutySlot").
		Joins("JOIN duty_slots ON duty_slots.id = assignments.duty_slot_id").
		Where("assignments.pinned = ? AND duty_slots.date >= ? AND duty_slots.date <= ?", true, start, end).
		Order("assignments.duty_slot_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) FindByStaffSince(db *gorm.DB, staffID uuid.UUID, since time.Time) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	err := db.Preload("DutySlot").Preload("DutySlot.Room").Preload("DutySlot.DutyType").
		Joins("JOIN duty_slots ON duty_slots.id = assignments.duty_slot_id").
		Where("assignments.staff_id = ? AND duty_slots.date >= ?", staffID, since).
		Order("duty_slots.date ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

func (r *assignmentRepository) FindByRunID(db *gorm.DB, runID uuid.UUID) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	err := db.Preload("DutySlot").
		Where("run_id = ?", runID).
		Order("duty_slot_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreatePinned inserts a manual pin only if the slot is still open. The
// conditional write, not a pre-check, is what closes the race window.
func (r *assignmentRepository) CreatePinned(db *gorm.DB, assignment *entity.Assignment) error {
	assignment.Pinned = true
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "duty_slot_id"}},
		DoNothing: true,
	}).Create(assignment)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainRepo.ErrSlotConflict
	}
	return nil
}

// PublishRun persists a published run atomically: the run row, removal of the
// superseded non-pinned assignments in range, and the new assignment set.
// Every insert is conditional on the slot being open; a slot filled between
// validation and commit rolls the whole transaction back.
func (r *assignmentRepository) PublishRun(db *gorm.DB, run *entity.ScheduleRun, assignments []entity.Assignment) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Assignments", "Failures").Create(run).Error; err != nil {
			return fmt.Errorf("create schedule run: %w", err)
		}

		// Non-pinned assignments in the range are superseded by this run.
		// Pinned ones stay; the engine already re-proposed them unchanged.
		err := tx.Where("pinned = ? AND duty_slot_id IN (?)", false,
			tx.Session(&gorm.Session{NewDB: true}).Model(&entity.DutySlot{}).
				Select("id").
				Where("date >= ? AND date <= ?", run.RangeStart, run.RangeEnd),
		).Delete(&entity.Assignment{}).Error
		if err != nil {
			return fmt.Errorf("clear superseded assignments: %w", err)
		}

		var fresh []entity.Assignment
		for i := range assignments {
			if !assignments[i].Pinned {
				fresh = append(fresh, assignments[i])
			}
		}
		if len(fresh) == 0 {
			return nil
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "duty_slot_id"}},
			DoNothing: true,
		}).Create(&fresh)
		if result.Error != nil {
			return fmt.Errorf("insert assignments: %w", result.Error)
		}
		if result.RowsAffected != int64(len(fresh)) {
			return domainRepo.ErrSlotConflict
		}
		return nil
	})
}
