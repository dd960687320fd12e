package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"hospital-duty-scheduler/config"
	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
	"hospital-duty-scheduler/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AnalyticsUsecase aggregates a staff member's assignment history into the
// per-user duty statistics view.
type AnalyticsUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	cfg             config.SchedulerConfig
	staffRepository repository.StaffRepository
	assignmentRepo  repository.AssignmentRepository
}

func NewAnalyticsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.SchedulerConfig,
	staffRepository repository.StaffRepository,
	assignmentRepo repository.AssignmentRepository,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		db:              db,
		log:             log,
		cfg:             cfg,
		staffRepository: staffRepository,
		assignmentRepo:  assignmentRepo,
	}
}

// UserAnalytics aggregates one staff member's duties over the given trailing
// period; periodMonths <= 0 falls back to the configured balance window.
func (u *AnalyticsUsecase) UserAnalytics(ctx context.Context, staffID uuid.UUID, periodMonths int) (*dto.UserAnalyticsResponse, error) {
	db := u.db.WithContext(ctx)
	if periodMonths <= 0 {
		periodMonths = u.cfg.BalanceWindowMonths
	}

	staff, err := u.staffRepository.FindByID(db, staffID)
	if err != nil {
		u.log.Warnf("Failed to find staff by id: %+v", err)
		return nil, err
	}
	if staff == nil {
		return nil, ErrStaffNotFound
	}

	since := time.Now().AddDate(0, -periodMonths, 0)
	assignments, err := u.assignmentRepo.FindByStaffSince(db, staffID, since)
	if err != nil {
		u.log.Warnf("Failed to load assignment history: %+v", err)
		return nil, err
	}

	response := &dto.UserAnalyticsResponse{
		StaffID:       staffID.String(),
		PeriodMonths:  periodMonths,
		DutyStats:     dutyStats(assignments),
		RoomStats:     roomStats(assignments),
		MonthlyTrends: monthlyTrends(assignments),
	}
	response.Insights = insights(staff, response, len(assignments))
	return response, nil
}

func dutyStats(assignments []entity.Assignment) []dto.DutyStatResponse {
	counts := make(map[int]*dto.DutyStatResponse)
	for i := range assignments {
		slot := assignments[i].DutySlot
		stat, ok := counts[slot.DutyTypeID]
		if !ok {
			stat = &dto.DutyStatResponse{DutyTypeID: slot.DutyTypeID, DutyType: slot.DutyType.Name}
			counts[slot.DutyTypeID] = stat
		}
		stat.Count++
	}

	stats := make([]dto.DutyStatResponse, 0, len(counts))
	for _, stat := range counts {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].DutyTypeID < stats[j].DutyTypeID
	})
	return stats
}

func roomStats(assignments []entity.Assignment) []dto.RoomStatResponse {
	counts := make(map[int]*dto.RoomStatResponse)
	for i := range assignments {
		slot := assignments[i].DutySlot
		stat, ok := counts[slot.RoomID]
		if !ok {
			stat = &dto.RoomStatResponse{RoomID: slot.RoomID, Room: slot.Room.Name}
			counts[slot.RoomID] = stat
		}
		stat.Count++
	}

	stats := make([]dto.RoomStatResponse, 0, len(counts))
	for _, stat := range counts {
		stats = append(stats, *stat)
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count != stats[j].Count {
			return stats[i].Count > stats[j].Count
		}
		return stats[i].RoomID < stats[j].RoomID
	})
	return stats
}

func monthlyTrends(assignments []entity.Assignment) []dto.MonthlyTrendResponse {
	counts := make(map[string]int)
	for i := range assignments {
		counts[assignments[i].DutySlot.Date.Format("2006-01")]++
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)

	trends := make([]dto.MonthlyTrendResponse, 0, len(months))
	for _, month := range months {
		trends = append(trends, dto.MonthlyTrendResponse{Month: month, Count: counts[month]})
	}
	return trends
}

func insights(staff *entity.Staff, response *dto.UserAnalyticsResponse, total int) []string {
	if total == 0 {
		return []string{fmt.Sprintf("%s had no duties in the last %d months", staff.FullName, response.PeriodMonths)}
	}

	result := []string{
		fmt.Sprintf("%s worked %d duties in the last %d months", staff.FullName, total, response.PeriodMonths),
	}
	if len(response.DutyStats) > 0 {
		top := response.DutyStats[0]
		result = append(result, fmt.Sprintf("most frequent duty type: %s (%d)", top.DutyType, top.Count))
	}
	if len(response.RoomStats) > 0 {
		top := response.RoomStats[0]
		result = append(result, fmt.Sprintf("most frequent operating room: %s (%d)", top.Room, top.Count))
	}
	return result
}
