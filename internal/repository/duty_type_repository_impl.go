package repository

import (
	"errors"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

type dutyTypeRepository struct{}

func NewDutyTypeRepository() domainRepo.DutyTypeRepository {
	return &dutyTypeRepository{}
}

func (r *dutyTypeRepository) FindAll(db *gorm.DB) ([]entity.DutyType, error) {
	var dutyTypes []entity.DutyType
	err := db.Order("id ASC").Find(&dutyTypes).Error
	if err != nil {
		return nil, err
	}
	return dutyTypes, nil
}

func (r *dutyTypeRepository) FindByID(db *gorm.DB, id int) (*entity.DutyType, error) {
	var dutyType entity.DutyType
	err := db.Where("id = ?", id).First(&dutyType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &dutyType, nil
}

func (r *dutyTypeRepository) FindByCodes(db *gorm.DB, codes []string) ([]entity.DutyType, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var dutyTypes []entity.DutyType
	err := db.Where("code IN ?", codes).Order("id ASC").Find(&dutyTypes).Error
	if err != nil {
		return nil, err
	}
	return dutyTypes, nil
}
