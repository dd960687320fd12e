package usecase

import (
	"context"
	"errors"
	"fmt"
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
	ErrQualificationNotFound  = errors.New("qualification not found")
	ErrQualificationInactive  = errors.New("qualification is deactivated")
	ErrQualificationCodeTaken = errors.New("qualification code already in use")
	ErrQualificationHeld      = errors.New("staff member already holds an active record for this qualification")
	ErrInvalidExpiry          = errors.New("expiry date must be after obtained date")
)

// ConfigurationError reports admin input that references things that do not
// exist, with every offending reference listed at once.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Problems)
}

type QualificationUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	qualificationRepo   repository.QualificationRepository
	staffQualRepository repository.StaffQualificationRepository
	staffRepository     repository.StaffRepository
	roomRepository      repository.RoomRepository
}

func NewQualificationUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	qualificationRepo repository.QualificationRepository,
	staffQualRepository repository.StaffQualificationRepository,
	staffRepository repository.StaffRepository,
	roomRepository repository.RoomRepository,
) *QualificationUsecase {
	return &QualificationUsecase{
		db:                  db,
		log:                 log,
		qualificationRepo:   qualificationRepo,
		staffQualRepository: staffQualRepository,
		staffRepository:     staffRepository,
		roomRepository:      roomRepository,
	}
}

// Save creates or updates a qualification definition. Room references are
// validated as a whole so the admin sees every unknown room in one response.
func (u *QualificationUsecase) Save(ctx context.Context, request *dto.SaveQualificationRequest) (*dto.QualificationResponse, error) {
	db := u.db.WithContext(ctx)

	rooms, err := u.roomRepository.FindByIDs(db, request.ApplicableRoomIDs)
	if err != nil {
		u.log.Warnf("Failed to resolve applicable rooms: %+v", err)
		return nil, err
	}
	if len(rooms) != len(request.ApplicableRoomIDs) {
		found := make(map[int]bool, len(rooms))
		for _, room := range rooms {
			found[room.ID] = true
		}
		var problems []string
		for _, id := range request.ApplicableRoomIDs {
			if !found[id] {
				problems = append(problems, fmt.Sprintf("operating room %d does not exist", id))
			}
		}
		return nil, &ConfigurationError{Problems: problems}
	}

	existing, err := u.qualificationRepo.FindByCode(db, request.Code)
	if err != nil {
		u.log.Warnf("Failed to check qualification code: %+v", err)
		return nil, err
	}
	if existing != nil && existing.ID != request.ID {
		return nil, ErrQualificationCodeTaken
	}

	qualification := &entity.Qualification{
		ID:                      request.ID,
		Code:                    request.Code,
		Name:                    request.Name,
		Category:                entity.QualificationCategory(request.Category),
		Mandatory:               request.Mandatory,
		RequiredExperienceYears: request.RequiredExperienceYears,
		ApplicableRooms:         rooms,
	}

	// On update the full row is written back, so fields the request does not
	// carry must be taken from the stored row.
	if request.ID != 0 {
		current, err := u.qualificationRepo.FindByID(db, request.ID)
		if err != nil {
			u.log.Warnf("Failed to find qualification by id: %+v", err)
			return nil, err
		}
		if current == nil {
			return nil, ErrQualificationNotFound
		}
		qualification.IsActive = current.IsActive
		qualification.CreatedAt = current.CreatedAt
	}

	if err := u.qualificationRepo.Save(db, qualification); err != nil {
		u.log.Warnf("Failed to save qualification: %+v", err)
		return nil, err
	}

	return converter.QualificationToResponse(qualification), nil
}

func (u *QualificationUsecase) List(ctx context.Context) (*dto.QualificationListResponse, error) {
	qualifications, err := u.qualificationRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list qualifications: %+v", err)
		return nil, err
	}

	return &dto.QualificationListResponse{
		Qualifications: converter.QualificationsToResponses(qualifications),
		Total:          len(qualifications),
	}, nil
}

// Deactivate retires a qualification. Definitions are never deleted, so
// historical assignments keep resolving.
func (u *QualificationUsecase) Deactivate(ctx context.Context, id int) error {
	affected, err := u.qualificationRepo.Deactivate(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to deactivate qualification: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrQualificationNotFound
	}
	return nil
}

// AssignToStaff grants a qualification to a staff member. At most one active
// record per (staff, qualification) pair may exist.
func (u *QualificationUsecase) AssignToStaff(ctx context.Context, staffID uuid.UUID, request *dto.AssignStaffQualificationRequest) (*dto.StaffQualificationResponse, error) {
	db := u.db.WithContext(ctx)

	staff, err := u.staffRepository.FindByID(db, staffID)
	if err != nil {
		u.log.Warnf("Failed to find staff by id: %+v", err)
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}

	qualification, err := u.qualificationRepo.FindByID(db, request.QualificationID)
	if err != nil {
		u.log.Warnf("Failed to find qualification by id: %+v", err)
		return nil, err
	}
	if qualification == nil {
		return nil, ErrQualificationNotFound
	}
	if qualification.IsActive != nil && !*qualification.IsActive {
		return nil, ErrQualificationInactive
	}

	obtained, err := time.Parse("2006-01-02", request.ObtainedDate)
	if err != nil {
		return nil, err
	}
	var expiry *time.Time
	if request.ExpiryDate != "" {
		parsed, err := time.Parse("2006-01-02", request.ExpiryDate)
		if err != nil {
			return nil, err
		}
		if !parsed.After(obtained) {
			return nil, ErrInvalidExpiry
		}
		expiry = &parsed
	}

	active, err := u.staffQualRepository.FindActive(db, staffID, request.QualificationID)
	if err != nil {
		u.log.Warnf("Failed to check active qualification record: %+v", err)
		return nil, err
	}
	if active != nil {
		return nil, ErrQualificationHeld
	}

	record := &entity.StaffQualification{
		StaffID:         staffID,
		QualificationID: request.QualificationID,
		ObtainedDate:    obtained,
		ExpiryDate:      expiry,
		Status:          entity.StaffQualificationStatusActive,
	}
	if err := u.staffQualRepository.Create(db, record); err != nil {
		u.log.Warnf("Failed to create staff qualification: %+v", err)
		return nil, err
	}

	record.Qualification = *qualification
	return converter.StaffQualificationToResponse(record), nil
}

func (u *QualificationUsecase) ListForStaff(ctx context.Context, staffID uuid.UUID) (*dto.StaffQualificationListResponse, error) {
	db := u.db.WithContext(ctx)

	staff, err := u.staffRepository.FindByID(db, staffID)
	if err != nil {
		u.log.Warnf("Failed to find staff by id: %+v", err)
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}

	records, err := u.staffQualRepository.FindByStaffID(db, staffID)
	if err != nil {
		u.log.Warnf("Failed to list staff qualifications: %+v", err)
		return nil, err
	}

	return &dto.StaffQualificationListResponse{
		Qualifications: converter.StaffQualificationsToResponses(records),
		Total:          len(records),
	}, nil
}
