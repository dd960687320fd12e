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
	"hospital-duty-scheduler/internal/scheduler"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrRoomNotFound     = errors.New("operating room not found")
	ErrDutyTypeNotFound = errors.New("duty type not found")
	ErrSlotNotFound     = errors.New("duty slot not found")
	ErrSlotExists       = errors.New("duty slot already exists for this room, date and duty type")
	ErrStaffNotEligible = errors.New("staff member is not eligible for this slot")
)

// RosterUsecase manages the inputs of scheduling: rooms, duty types, the
// slots needing coverage, and manual pins.
type RosterUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	roomRepository      repository.RoomRepository
	dutyTypeRepository  repository.DutyTypeRepository
	dutySlotRepository  repository.DutySlotRepository
	assignmentRepo      repository.AssignmentRepository
	staffRepository     repository.StaffRepository
	qualificationRepo   repository.QualificationRepository
	staffQualRepository repository.StaffQualificationRepository
}

func NewRosterUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	roomRepository repository.RoomRepository,
	dutyTypeRepository repository.DutyTypeRepository,
	dutySlotRepository repository.DutySlotRepository,
	assignmentRepo repository.AssignmentRepository,
	staffRepository repository.StaffRepository,
	qualificationRepo repository.QualificationRepository,
	staffQualRepository repository.StaffQualificationRepository,
) *RosterUsecase {
	return &RosterUsecase{
		db:                  db,
		log:                 log,
		roomRepository:      roomRepository,
		dutyTypeRepository:  dutyTypeRepository,
		dutySlotRepository:  dutySlotRepository,
		assignmentRepo:      assignmentRepo,
		staffRepository:     staffRepository,
		qualificationRepo:   qualificationRepo,
		staffQualRepository: staffQualRepository,
	}
}

func (u *RosterUsecase) CreateRoom(ctx context.Context, request *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	room := &entity.OperatingRoom{
		Name:      request.Name,
		Specialty: request.Specialty,
	}
	if err := u.roomRepository.Create(u.db.WithContext(ctx), room); err != nil {
		u.log.Warnf("Failed to create operating room: %+v", err)
		return nil, err
	}
	return converter.RoomToResponse(room), nil
}

func (u *RosterUsecase) ListRooms(ctx context.Context) (*dto.RoomListResponse, error) {
	rooms, err := u.roomRepository.FindAllActive(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list operating rooms: %+v", err)
		return nil, err
	}
	return &dto.RoomListResponse{
		Rooms: converter.RoomsToResponses(rooms),
		Total: len(rooms),
	}, nil
}

func (u *RosterUsecase) ListDutyTypes(ctx context.Context) (*dto.DutyTypeListResponse, error) {
	dutyTypes, err := u.dutyTypeRepository.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list duty types: %+v", err)
		return nil, err
	}
	return &dto.DutyTypeListResponse{
		DutyTypes: converter.DutyTypesToResponses(dutyTypes),
		Total:     len(dutyTypes),
	}, nil
}

func (u *RosterUsecase) CreateDutySlot(ctx context.Context, request *dto.CreateDutySlotRequest) (*dto.DutySlotResponse, error) {
	db := u.db.WithContext(ctx)

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		return nil, err
	}

	room, err := u.roomRepository.FindByID(db, request.RoomID)
	if err != nil {
		u.log.Warnf("Failed to find operating room: %+v", err)
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	dutyType, err := u.dutyTypeRepository.FindByID(db, request.DutyTypeID)
	if err != nil {
		u.log.Warnf("Failed to find duty type: %+v", err)
		return nil, err
	}
	if dutyType == nil {
		return nil, ErrDutyTypeNotFound
	}

	existing, err := u.dutySlotRepository.FindByRoomDateType(db, request.RoomID, date, request.DutyTypeID)
	if err != nil {
		u.log.Warnf("Failed to check duty slot uniqueness: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlotExists
	}

	slot := &entity.DutySlot{
		RoomID:     request.RoomID,
		DutyTypeID: request.DutyTypeID,
		Date:       date,
	}
	if err := u.dutySlotRepository.Create(db, slot); err != nil {
		u.log.Warnf("Failed to create duty slot: %+v", err)
		return nil, err
	}

	slot.Room = *room
	slot.DutyType = *dutyType
	return converter.DutySlotToResponse(slot), nil
}

func (u *RosterUsecase) ListDutySlots(ctx context.Context, start, end time.Time) (*dto.DutySlotListResponse, error) {
	slots, err := u.dutySlotRepository.FindInRange(u.db.WithContext(ctx), start, end)
	if err != nil {
		u.log.Warnf("Failed to list duty slots: %+v", err)
		return nil, err
	}
	return &dto.DutySlotListResponse{
		Slots: converter.DutySlotsToResponses(slots),
		Total: len(slots),
	}, nil
}

func (u *RosterUsecase) ListAssignments(ctx context.Context, start, end time.Time) ([]dto.AssignmentResponse, error) {
	assignments, err := u.assignmentRepo.FindInRange(u.db.WithContext(ctx), start, end)
	if err != nil {
		u.log.Warnf("Failed to list assignments: %+v", err)
		return nil, err
	}
	return converter.AssignmentsToResponses(assignments), nil
}

// PinAssignment fixes a staff member to a slot ahead of scheduling runs. The
// pin is validated against the same eligibility rules the engine applies, so
// an invalid pin is rejected here instead of failing a later run.
func (u *RosterUsecase) PinAssignment(ctx context.Context, request *dto.PinAssignmentRequest) (*dto.AssignmentResponse, error) {
	db := u.db.WithContext(ctx)

	staffID, err := uuid.Parse(request.StaffID)
	if err != nil {
		return nil, fmt.Errorf("parse staff id: %w", err)
	}

	slot, err := u.dutySlotRepository.FindByID(db, request.DutySlotID)
	if err != nil {
		u.log.Warnf("Failed to find duty slot: %+v", err)
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}

	staff, err := u.staffRepository.FindByID(db, staffID)
	if err != nil {
		u.log.Warnf("Failed to find staff by id: %+v", err)
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}

	evaluator, err := u.buildEvaluator(db)
	if err != nil {
		return nil, err
	}
	result := evaluator.Evaluate(staff, slot.RoomID, slot.Date)
	if !result.Eligible {
		return nil, fmt.Errorf("%w: %s", ErrStaffNotEligible, result.Reason)
	}

	assignment := &entity.Assignment{
		DutySlotID: slot.ID,
		StaffID:    staffID,
		Pinned:     true,
	}
	if err := u.assignmentRepo.CreatePinned(db, assignment); err != nil {
		if !errors.Is(err, repository.ErrSlotConflict) {
			u.log.Warnf("Failed to create pinned assignment: %+v", err)
		}
		return nil, err
	}

	assignment.DutySlot = *slot
	return converter.AssignmentToResponse(assignment), nil
}

func (u *RosterUsecase) buildEvaluator(db *gorm.DB) (*scheduler.Evaluator, error) {
	qualifications, err := u.qualificationRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load qualifications: %+v", err)
		return nil, err
	}
	rooms, err := u.roomRepository.FindAllActive(db)
	if err != nil {
		u.log.Warnf("Failed to load operating rooms: %+v", err)
		return nil, err
	}
	held, err := u.staffQualRepository.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load staff qualifications: %+v", err)
		return nil, err
	}
	return scheduler.NewEvaluator(scheduler.NewQualificationIndex(qualifications, rooms, held)), nil
}
