package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-duty-scheduler/internal/converter"
	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
	"hospital-duty-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrStaffNotFound       = errors.New("staff member not found")
	ErrEmployeeNumberTaken = errors.New("employee number already in use")
)

type StaffUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	staffRepository repository.StaffRepository
}

func NewStaffUsecase(db *gorm.DB, log *logrus.Logger, staffRepository repository.StaffRepository) *StaffUsecase {
	return &StaffUsecase{
		db:              db,
		log:             log,
		staffRepository: staffRepository,
	}
}

func (u *StaffUsecase) Create(ctx context.Context, request *dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	db := u.db.WithContext(ctx)

	careerStart, err := time.Parse("2006-01-02", request.CareerStartDate)
	if err != nil {
		return nil, err
	}

	existing, err := u.staffRepository.FindByEmployeeNumber(db, request.EmployeeNumber)
	if err != nil {
		u.log.Warnf("Failed to check employee number: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmployeeNumberTaken
	}

	staff := &entity.Staff{
		EmployeeNumber:  request.EmployeeNumber,
		FullName:        request.FullName,
		Department:      request.Department,
		CareerStartDate: careerStart,
	}
	if err := u.staffRepository.Create(db, staff); err != nil {
		u.log.Warnf("Failed to create staff: %+v", err)
		return nil, err
	}

	return converter.StaffToResponse(staff), nil
}

func (u *StaffUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.StaffResponse, error) {
	staff, err := u.staffRepository.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find staff by id: %+v", err)
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}
	return converter.StaffToResponse(staff), nil
}

func (u *StaffUsecase) List(ctx context.Context) (*dto.StaffListResponse, error) {
	staff, err := u.staffRepository.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list staff: %+v", err)
		return nil, err
	}

	return &dto.StaffListResponse{
		Staff: converter.StaffToResponses(staff),
		Total: len(staff),
	}, nil
}
