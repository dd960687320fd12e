package repository

import (
	"errors"

	"hospital-duty-scheduler/internal/domain/entity"
	domainRepo "hospital-duty-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

type qualificationRepository struct{}

func NewQualificationRepository() domainRepo.QualificationRepository {
	return &qualificationRepository{}
}

// Save creates or updates a qualification and rewrites its room associations.
func (r *qualificationRepository) Save(db *gorm.DB, qualification *entity.Qualification) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("ApplicableRooms").Save(qualification).Error; err != nil {
			return err
		}
		return tx.Model(qualification).Association("ApplicableRooms").Replace(qualification.ApplicableRooms)
	})
}

func (r *qualificationRepository) FindByID(db *gorm.DB, id int) (*entity.Qualification, error) {
	var qualification entity.Qualification
	err := db.Preload("ApplicableRooms").Where("id = ?", id).First(&qualification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &qualification, nil
}

func (r *qualificationRepository) FindByCode(db *gorm.DB, code string) (*entity.Qualification, error) {
	var qualification entity.Qualification
	err := db.Preload("ApplicableRooms").Where("code = ?", code).First(&qualification).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &qualification, nil
}

func (r *qualificationRepository) FindAll(db *gorm.DB) ([]entity.Qualification, error) {
	var qualifications []entity.Qualification
	err := db.Preload("ApplicableRooms").Order("id ASC").Find(&qualifications).Error
	if err != nil {
		return nil, err
	}
	return qualifications, nil
}

func (r *qualificationRepository) Deactivate(db *gorm.DB, id int) (int64, error) {
	result := db.Model(&entity.Qualification{}).Where("id = ?", id).Update("is_active", false)
	return result.RowsAffected, result.Error
}
