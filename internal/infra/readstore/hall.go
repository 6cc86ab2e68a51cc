package readstore

import (
	"context"
	"time"

	"hall-booking/internal/domain/hall"
	"hall-booking/internal/domain/schedule"
	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/errs"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type HallReadStore struct {
	db infra.DBTX
}

func NewHallReadStore(db infra.DBTX) *HallReadStore {
	return &HallReadStore{db: db}
}

const hallScheduleQuery = `
SELECT id, branch_id, status
FROM halls
WHERE id = $1`

const workingHoursQuery = `
SELECT weekday, open_min, close_min, closed
FROM hall_working_hours
WHERE hall_id = $1`

func (r *HallReadStore) HallSchedule(ctx context.Context, hallID uuid.UUID) (*queries.HallSchedule, error) {
	var (
		id, branchID uuid.UUID
		status       string
	)
	err := r.db.QueryRow(ctx, hallScheduleQuery, hallID).Scan(&id, &branchID, &status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, errs.Mark(err, queries.ErrHallNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load hall schedule", err)
	}

	hours, err := r.workingHours(ctx, hallID)
	if err != nil {
		return nil, err
	}

	return &queries.HallSchedule{
		HallID:       id,
		BranchID:     branchID,
		Status:       hall.Status(status),
		WorkingHours: hours,
	}, nil
}

func (r *HallReadStore) workingHours(ctx context.Context, hallID uuid.UUID) (hall.WorkingHours, error) {
	rows, err := r.db.Query(ctx, workingHoursQuery, hallID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load working hours", err)
	}
	defer rows.Close()

	hours := make(hall.WorkingHours)
	for rows.Next() {
		var (
			weekday            int
			openMin, closeMin  int
			closed             bool
		)
		if err := rows.Scan(&weekday, &openMin, &closeMin, &closed); err != nil {
			return nil, infra.WrapRepoErr("failed to scan working hours row", err)
		}
		hours[time.Weekday(weekday)] = hall.WorkingDay{OpenMin: openMin, CloseMin: closeMin, Closed: closed}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read working hours rows", err)
	}
	return hours, nil
}

const blockingIntervalsQuery = `
SELECT start_time, end_time
FROM bookings
WHERE hall_id = $1
  AND status IN ('pending', 'confirmed')
  AND tstzrange(start_time, end_time) && tstzrange($2, $3)
ORDER BY start_time`

func (r *HallReadStore) BlockingIntervals(ctx context.Context, hallID uuid.UUID, dayStart, dayEnd time.Time) ([]schedule.Busy, error) {
	rows, err := r.db.Query(ctx, blockingIntervalsQuery, hallID, dayStart, dayEnd)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load blocking intervals", err)
	}
	defer rows.Close()

	var busy []schedule.Busy
	for rows.Next() {
		var b schedule.Busy
		if err := rows.Scan(&b.Start, &b.End); err != nil {
			return nil, infra.WrapRepoErr("failed to scan blocking interval", err)
		}
		busy = append(busy, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read blocking intervals", err)
	}
	return busy, nil
}
