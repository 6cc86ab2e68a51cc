package queries

import (
	"context"
	"time"

	"hall-booking/internal/domain/schedule"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/pkg/config"
	"hall-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrHallNotFound = errs.New("hall not found")
	ErrInvalidDate  = errs.New("invalid date")
)

type SlotReadStore interface {
	HallSchedule(ctx context.Context, hallID uuid.UUID) (*HallSchedule, error)
	// BlockingIntervals returns pending/confirmed booking windows that
	// intersect [dayStart, dayEnd) for the hall.
	BlockingIntervals(ctx context.Context, hallID uuid.UUID, dayStart, dayEnd time.Time) ([]schedule.Busy, error)
}

// SlotCache is a best-effort read-through cache; a miss or a cache
// failure is never an error, it only costs a resolve.
type SlotCache interface {
	Get(ctx context.Context, hallID uuid.UUID, date string) ([]SlotView, bool)
	Set(ctx context.Context, hallID uuid.UUID, date string, slots []SlotView)
	Invalidate(ctx context.Context, hallID uuid.UUID, dates ...string)
}

type SlotQueries interface {
	GetSlots(ctx context.Context, hallID uuid.UUID, date string) ([]SlotView, error)
}

type slotQueriesImpl struct {
	store       SlotReadStore
	cache       SlotCache
	granularity time.Duration
	clock       clock.Clock
}

func NewSlotQueries(store SlotReadStore, cache SlotCache, cfg config.BookingConfig, clk clock.Clock) SlotQueries {
	return &slotQueriesImpl{
		store:       store,
		cache:       cache,
		granularity: time.Duration(cfg.SlotGranularityMin) * time.Minute,
		clock:       clk,
	}
}

func (q *slotQueriesImpl) GetSlots(ctx context.Context, hallID uuid.UUID, date string) ([]SlotView, error) {
	day, err := schedule.ParseDate(date, q.clock.Now().Location())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidDate)
	}

	if q.cache != nil {
		if cached, ok := q.cache.Get(ctx, hallID, date); ok {
			return cached, nil
		}
	}

	hallSchedule, err := q.store.HallSchedule(ctx, hallID)
	if err != nil {
		return nil, err
	}

	dayStart := day
	dayEnd := day.Add(24 * time.Hour)
	busy, err := q.store.BlockingIntervals(ctx, hallID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	weekday := day.Weekday()
	slots := schedule.Resolve(day, hallSchedule.WorkingHours.Day(weekday), busy, q.granularity)

	views := make([]SlotView, len(slots))
	for i, s := range slots {
		views[i] = SlotView{Start: s.Start, End: s.End, Free: s.Free}
	}

	if q.cache != nil {
		q.cache.Set(ctx, hallID, date, views)
	}
	return views, nil
}
