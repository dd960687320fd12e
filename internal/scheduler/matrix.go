package scheduler

import (
	"context"
	"time"

	"hospital-duty-scheduler/internal/domain/entity"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Matrix is the staff x room eligibility grid the admin console renders.
type Matrix struct {
	AsOf     time.Time                             `json:"as_of"`
	StaffIDs []uuid.UUID                           `json:"staff_ids"`
	RoomIDs  []int                                 `json:"room_ids"`
	Cells    map[uuid.UUID]map[int]EligibilityResult `json:"cells"`
}

// BuildMatrix evaluates every (staff, room) pair. Rows are computed in
// parallel, one goroutine per staff member, bounded by workers; each goroutine
// writes only its own row so no locking is needed.
func BuildMatrix(ctx context.Context, ev *Evaluator, staff []entity.Staff, rooms []entity.OperatingRoom, asOf time.Time, workers int) (*Matrix, error) {
	if workers <= 0 {
		workers = 1
	}

	rows := make([]map[int]EligibilityResult, len(staff))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range staff {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			row := make(map[int]EligibilityResult, len(rooms))
			for j := range rooms {
				row[rooms[j].ID] = ev.Evaluate(&staff[i], rooms[j].ID, asOf)
			}
			rows[i] = row
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	matrix := &Matrix{
		AsOf:     asOf,
		StaffIDs: make([]uuid.UUID, len(staff)),
		RoomIDs:  make([]int, len(rooms)),
		Cells:    make(map[uuid.UUID]map[int]EligibilityResult, len(staff)),
	}
	for i := range staff {
		matrix.StaffIDs[i] = staff[i].ID
		matrix.Cells[staff[i].ID] = rows[i]
	}
	for j := range rooms {
		matrix.RoomIDs[j] = rooms[j].ID
	}

	return matrix, nil
}
