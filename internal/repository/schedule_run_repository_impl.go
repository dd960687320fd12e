package repository

import (
	"errors"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scheduleRunRepository struct{}

func NewScheduleRunRepository() domainRepo.ScheduleRunRepository {
	return &scheduleRunRepository{}
}

func (r *scheduleRunRepository) Create(db *gorm.DB, run *entity.ScheduleRun) error {
	return db.Create(run).Error
}

func (r *scheduleRunRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.ScheduleRun, error) {
	var run entity.ScheduleRun
	err := db.Preload("Failures").Preload("Assignments").Preload("Assignments.DutySlot").
		Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

func (r *scheduleRunRepository) FindAll(db *gorm.DB) ([]entity.ScheduleRun, error) {
	var runs []entity.ScheduleRun
	err := db.Preload("Failures").Order("created_at DESC").Find(&runs).Error
	if err != nil {
		return nil, err
	}
	return runs, nil
}
