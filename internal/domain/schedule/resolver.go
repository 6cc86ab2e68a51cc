// Package schedule turns a hall's working hours and its existing bookings
// into an ordered list of bookable slots. Resolution is pure: it never
// touches persistence and a given input always yields the same partition.
package schedule

import (
	"errors"
	"time"

	"hall-booking/internal/domain/hall"
)

var ErrInvalidDate = errors.New("invalid date")

const dateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD calendar date into midnight of that day.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// Busy is an occupied half-open interval [Start, End).
type Busy struct {
	Start time.Time
	End   time.Time
}

type Slot struct {
	Start time.Time
	End   time.Time
	Free  bool
}

// Resolve partitions the day's open window into contiguous granularity-sized
// slots and flags each one busy when it intersects an existing booking.
// Callers pass only bookings that block the slot (pending and confirmed).
//
// A closed day resolves to a single busy interval spanning the nominal day;
// a zero-length or inverted open window resolves to no slots at all.
func Resolve(date time.Time, day hall.WorkingDay, bookings []Busy, granularity time.Duration) []Slot {
	if granularity <= 0 {
		granularity = time.Hour
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	if day.Closed {
		return []Slot{{
			Start: dayStart,
			End:   dayStart.Add(24 * time.Hour),
			Free:  false,
		}}
	}

	if day.CloseMin <= day.OpenMin {
		return nil
	}

	open := dayStart.Add(time.Duration(day.OpenMin) * time.Minute)
	close := dayStart.Add(time.Duration(day.CloseMin) * time.Minute)

	var slots []Slot
	for cursor := open; cursor.Before(close); {
		next := cursor.Add(granularity)
		if next.After(close) {
			next = close
		}
		slots = append(slots, Slot{
			Start: cursor,
			End:   next,
			Free:  !intersectsAny(cursor, next, bookings),
		})
		cursor = next
	}
	return slots
}

func intersectsAny(start, end time.Time, bookings []Busy) bool {
	for _, b := range bookings {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
