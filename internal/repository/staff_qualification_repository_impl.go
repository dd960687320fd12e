package repository

import (
	"errors"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type staffQualificationRepository struct{}

func NewStaffQualificationRepository() domainRepo.StaffQualificationRepository {
	return &staffQualificationRepository{}
}

func (r *staffQualificationRepository) Create(db *gorm.DB, record *entity.StaffQualification) error {
	return db.Create(record).Error
}

func (r *staffQualificationRepository) FindActive(db *gorm.DB, staffID uuid.UUID, qualificationID int) (*entity.StaffQualification, error) {
	var record entity.StaffQualification
	err := db.Where("staff_id = ? AND qualification_id = ? AND status = ?",
		staffID, qualificationID, entity.StaffQualificationStatusActive).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *staffQualificationRepository) FindByStaffID(db *gorm.DB, staffID uuid.UUID) ([]entity.StaffQualification, error) {
	var records []entity.StaffQualification
	err := db.Preload("Qualification").Where("staff_id = ?", staffID).Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *staffQualificationRepository) FindAll(db *gorm.DB) ([]entity.StaffQualification, error) {
	var records []entity.StaffQualification
	err := db.Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *staffQualificationRepository) ExpireLapsed(db *gorm.DB, asOf time.Time) (int64, error) {
	result := db.Model(&entity.StaffQualification{}).
		Where("status = ? AND expiry_date IS NOT NULL AND expiry_date < ?",
			entity.StaffQualificationStatusActive, asOf).
		Update("status", entity.StaffQualificationStatusExpired)
	return result.RowsAffected, result.Error
}
