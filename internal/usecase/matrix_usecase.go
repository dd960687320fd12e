package usecase

import (
	"context"
	"strconv"
	"time"

	"hospital-duty-scheduler/config"
	"hospital-duty-scheduler/internal/converter"
	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/repository"
	"hospital-duty-scheduler/internal/scheduler"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MatrixUsecase builds the staff x room placement matrix for the admin
// console.
type MatrixUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	cfg                 config.SchedulerConfig
	staffRepository     repository.StaffRepository
	roomRepository      repository.RoomRepository
	qualificationRepo   repository.QualificationRepository
	staffQualRepository repository.StaffQualificationRepository
}

func NewMatrixUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.SchedulerConfig,
	staffRepository repository.StaffRepository,
	roomRepository repository.RoomRepository,
	qualificationRepo repository.QualificationRepository,
	staffQualRepository repository.StaffQualificationRepository,
) *MatrixUsecase {
	return &MatrixUsecase{
		db:                  db,
		log:                 log,
		cfg:                 cfg,
		staffRepository:     staffRepository,
		roomRepository:      roomRepository,
		qualificationRepo:   qualificationRepo,
		staffQualRepository: staffQualRepository,
	}
}

// Get builds the matrix as of the given date, defaulting to now. Lapsed
// qualification records are transitioned first so the grid never shows
// eligibility backed by an expired record.
func (u *MatrixUsecase) Get(ctx context.Context, asOf time.Time) (*dto.PlacementMatrixResponse, error) {
	db := u.db.WithContext(ctx)
	if asOf.IsZero() {
		asOf = time.Now()
	}

	expired, err := u.staffQualRepository.ExpireLapsed(db, asOf)
	if err != nil {
		u.log.Warnf("Failed to expire lapsed qualifications: %+v", err)
		return nil, err
	}
	if expired > 0 {
		u.log.Infof("Expired %d lapsed staff qualification records", expired)
	}

	staff, err := u.staffRepository.FindAllActive(db)
	if err != nil {
		u.log.Warnf("Failed to load staff: %+v", err)
		return nil, err
	}
	rooms, err := u.roomRepository.FindAllActive(db)
	if err != nil {
		u.log.Warnf("Failed to load operating rooms: %+v", err)
		return nil, err
	}
	qualifications, err := u.qualificationRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load qualifications: %+v", err)
		return nil, err
	}
	held, err := u.staffQualRepository.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to load staff qualifications: %+v", err)
		return nil, err
	}

	evaluator := scheduler.NewEvaluator(scheduler.NewQualificationIndex(qualifications, rooms, held))
	matrix, err := scheduler.BuildMatrix(ctx, evaluator, staff, rooms, asOf, u.cfg.MatrixWorkers)
	if err != nil {
		u.log.Warnf("Failed to build placement matrix: %+v", err)
		return nil, err
	}

	response := &dto.PlacementMatrixResponse{
		AsOf:   asOf.Format("2006-01-02"),
		Staff:  converter.StaffToResponses(staff),
		Rooms:  converter.RoomsToResponses(rooms),
		Matrix: make(map[string]map[string]dto.MatrixCellResponse, len(staff)),
	}
	for staffID, row := range matrix.Cells {
		cells := make(map[string]dto.MatrixCellResponse, len(row))
		for roomID, cell := range row {
			cells[strconv.Itoa(roomID)] = dto.MatrixCellResponse{
				CanWork: cell.Eligible,
				Reason:  cell.Reason,
			}
		}
		response.Matrix[staffID.String()] = cells
	}

	return response, nil
}
