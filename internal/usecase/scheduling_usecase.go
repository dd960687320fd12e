package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-duty-scheduler/config"
	"hospital-duty-scheduler/internal/converter"
	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
	"hospital-duty-scheduler/internal/domain/repository"
	"hospital-duty-scheduler/internal/scheduler"
	"hospital-duty-scheduler/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidRange   = errors.New("range end must not be before range start")
	ErrNoSlotsInRange = errors.New("no duty slots in the requested range")
	ErrRunNotFound    = errors.New("schedule run not found")
)

// SchedulingUsecase orchestrates a scheduling run: serialize through the run
// lock, gather inputs, execute the engine, persist the outcome. The engine
// itself never touches storage.
type SchedulingUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	cfg                 config.SchedulerConfig
	engine              *scheduler.Engine
	runLock             *service.RunLockService
	dutySlotRepository  repository.DutySlotRepository
	dutyTypeRepository  repository.DutyTypeRepository
	staffRepository     repository.StaffRepository
	roomRepository      repository.RoomRepository
	qualificationRepo   repository.QualificationRepository
	staffQualRepository repository.StaffQualificationRepository
	assignmentRepo      repository.AssignmentRepository
	scheduleRunRepo     repository.ScheduleRunRepository
}

func NewSchedulingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.SchedulerConfig,
	engine *scheduler.Engine,
	runLock *service.RunLockService,
	dutySlotRepository repository.DutySlotRepository,
	dutyTypeRepository repository.DutyTypeRepository,
	staffRepository repository.StaffRepository,
	roomRepository repository.RoomRepository,
	qualificationRepo repository.QualificationRepository,
	staffQualRepository repository.StaffQualificationRepository,
	assignmentRepo repository.AssignmentRepository,
	scheduleRunRepo repository.ScheduleRunRepository,
) *SchedulingUsecase {
	return &SchedulingUsecase{
		db:                  db,
		log:                 log,
		cfg:                 cfg,
		engine:              engine,
		runLock:             runLock,
		dutySlotRepository:  dutySlotRepository,
		dutyTypeRepository:  dutyTypeRepository,
		staffRepository:     staffRepository,
		roomRepository:      roomRepository,
		qualificationRepo:   qualificationRepo,
		staffQualRepository: staffQualRepository,
		assignmentRepo:      assignmentRepo,
		scheduleRunRepo:     scheduleRunRepo,
	}
}

// Run executes one scheduling run over the requested range. Either a
// published run with a complete assignment set or a failed run with
// structured failures is persisted; nothing in between.
func (u *SchedulingUsecase) Run(ctx context.Context, request *dto.RunSchedulingRequest) (*dto.ScheduleRunResponse, error) {
	start, err := time.Parse("2006-01-02", request.RangeStart)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", request.RangeEnd)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	runID := uuid.New()
	if err := u.runLock.Acquire(ctx, runID); err != nil {
		return nil, err
	}
	defer u.runLock.Release(context.WithoutCancel(ctx), runID)

	db := u.db.WithContext(ctx)

	input, err := u.gatherInput(db, request, start, end)
	if err != nil {
		return nil, err
	}

	u.log.Infof("Scheduling run %s started for %s..%s (%d slots, %d staff)",
		runID, request.RangeStart, request.RangeEnd, len(input.Slots), len(input.Staff))

	result, err := u.engine.Run(ctx, *input)
	if err != nil {
		return nil, err
	}

	run := &entity.ScheduleRun{
		ID:         runID,
		RangeStart: start,
		RangeEnd:   end,
	}

	if result.State == scheduler.StateFailed {
		run.Status = entity.ScheduleRunStatusFailed
		for _, failure := range result.Failures {
			item := entity.ScheduleRunFailure{
				RunID:   runID,
				Kind:    string(failure.Kind),
				StaffID: failure.StaffID,
				Reason:  failure.Reason,
			}
			if failure.SlotID != 0 {
				slotID := failure.SlotID
				item.DutySlotID = &slotID
			}
			run.Failures = append(run.Failures, item)
		}
		if err := u.scheduleRunRepo.Create(db, run); err != nil {
			u.log.Warnf("Failed to persist failed run: %+v", err)
			return nil, err
		}
		return converter.ScheduleRunToResponse(run), nil
	}

	run.Status = entity.ScheduleRunStatusPublished
	assignments := make([]entity.Assignment, 0, len(result.Assignments))
	for _, proposed := range result.Assignments {
		assignments = append(assignments, entity.Assignment{
			DutySlotID: proposed.SlotID,
			StaffID:    proposed.StaffID,
			RunID:      &runID,
			Pinned:     proposed.Pinned,
		})
	}
	if err := u.assignmentRepo.PublishRun(db, run, assignments); err != nil {
		if !errors.Is(err, repository.ErrSlotConflict) {
			u.log.Warnf("Failed to publish run: %+v", err)
		}
		return nil, err
	}

	persisted, err := u.assignmentRepo.FindInRange(db, start, end)
	if err != nil {
		u.log.Warnf("Failed to reload published assignments: %+v", err)
		return nil, err
	}

	response := converter.ScheduleRunToResponse(run)
	response.Assignments = converter.AssignmentsToResponses(persisted)
	return response, nil
}

func (u *SchedulingUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ScheduleRunResponse, error) {
	db := u.db.WithContext(ctx)

	run, err := u.scheduleRunRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find schedule run: %+v", err)
		return nil, err
	}
	if run == nil {
		return nil, ErrRunNotFound
	}

	response := converter.ScheduleRunToResponse(run)
	if run.Status == entity.ScheduleRunStatusPublished {
		assignments, err := u.assignmentRepo.FindByRunID(db, id)
		if err != nil {
			u.log.Warnf("Failed to load run assignments: %+v", err)
			return nil, err
		}
		response.Assignments = converter.AssignmentsToResponses(assignments)
	}
	return response, nil
}

func (u *SchedulingUsecase) List(ctx context.Context) (*dto.ScheduleRunListResponse, error) {
	runs, err := u.scheduleRunRepo.FindAll(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list schedule runs: %+v", err)
		return nil, err
	}
	return &dto.ScheduleRunListResponse{
		Runs:  converter.ScheduleRunsToResponses(runs),
		Total: len(runs),
	}, nil
}

// gatherInput loads everything the engine needs up front. Lapsed
// qualification records are expired first so eligibility is checked against
// current state.
func (u *SchedulingUsecase) gatherInput(db *gorm.DB, request *dto.RunSchedulingRequest, start, end time.Time) (*scheduler.Input, error) {
	if _, err := u.staffQualRepository.ExpireLapsed(db, start); err != nil {
		u.log.Warnf("Failed to expire lapsed qualifications: %+v", err)
		return nil, err
	}

	slots, err := u.dutySlotRepository.FindInRange(db, start, end)
	if err != nil {
		u.log.Warnf("Failed to load duty slots: %+v", err)
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrNoSlotsInRange
	}

	staff, err := u.staffRepository.FindAllActive(db)
	if err != nil {
		u.log.Warnf("Failed to load staff: %+v", err)
		return nil, err
	}
	pins, err := u.assignmentRepo.FindPinnedInRange(db, start, end)
	if err != nil {
		u.log.Warnf("Failed to load pinned assignments: %+v", err)
		return nil, err
	}

	policy, err := u.resolvePolicy(db, request)
	if err != nil {
		return nil, err
	}

	// Fairness looks back over the balance window; the consecutive-day check
	// also needs duties just after the range.
	windowStart := start.AddDate(0, -u.cfg.BalanceWindowMonths, 0)
	before, err := u.assignmentRepo.FindInRange(db, windowStart, start.AddDate(0, 0, -1))
	if err != nil {
		u.log.Warnf("Failed to load assignment history: %+v", err)
		return nil, err
	}
	history := before
	if policy.MaxConsecutiveDays > 0 {
		after, err := u.assignmentRepo.FindInRange(db, end.AddDate(0, 0, 1), end.AddDate(0, 0, policy.MaxConsecutiveDays))
		if err != nil {
			u.log.Warnf("Failed to load trailing assignments: %+v", err)
			return nil, err
		}
		history = append(history, after...)
	}

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

	return &scheduler.Input{
		Slots:     slots,
		Staff:     staff,
		Pins:      pins,
		History:   history,
		Evaluator: scheduler.NewEvaluator(scheduler.NewQualificationIndex(qualifications, rooms, held)),
		Tracker:   scheduler.NewBalanceTracker(staff, before),
		Policy:    policy,
	}, nil
}

func (u *SchedulingUsecase) resolvePolicy(db *gorm.DB, request *dto.RunSchedulingRequest) (scheduler.Policy, error) {
	policy := scheduler.Policy{
		MaxConsecutiveDays: u.cfg.MaxConsecutiveDays,
		StackableDutyTypes: map[int]bool{},
	}
	if request.MaxConsecutiveDays != nil {
		policy.MaxConsecutiveDays = *request.MaxConsecutiveDays
	}

	codes := u.cfg.StackableDutyTypes
	if request.StackableDutyTypes != nil {
		codes = request.StackableDutyTypes
	}
	if len(codes) == 0 {
		return policy, nil
	}

	dutyTypes, err := u.dutyTypeRepository.FindByCodes(db, codes)
	if err != nil {
		u.log.Warnf("Failed to resolve stackable duty types: %+v", err)
		return policy, err
	}
	if len(dutyTypes) != len(codes) {
		found := make(map[string]bool, len(dutyTypes))
		for _, dutyType := range dutyTypes {
			found[dutyType.Code] = true
		}
		var problems []string
		for _, code := range codes {
			if !found[code] {
				problems = append(problems, "unknown duty type code "+code)
			}
		}
		return policy, &ConfigurationError{Problems: problems}
	}
	for _, dutyType := range dutyTypes {
		policy.StackableDutyTypes[dutyType.ID] = true
	}
	return policy, nil
}
