package repository

import (
	"errors"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type staffRepository struct{}

func NewStaffRepository() domainRepo.StaffRepository {
	return &staffRepository{}
}

func (r *staffRepository) Create(db *gorm.DB, staff *entity.Staff) error {
	return db.Create(staff).Error
}

func (r *staffRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Staff, error) {
	var staff entity.Staff
	err := db.Where("id = ?", id).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) FindByEmployeeNumber(db *gorm.DB, employeeNumber string) (*entity.Staff, error) {
	var staff entity.Staff
	err := db.Where("employee_number = ?", employeeNumber).First(&staff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) FindAllActive(db *gorm.DB) ([]entity.Staff, error) {
	var staff []entity.Staff
	err := db.Where("is_active = ?", true).Order("employee_number ASC").Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}
