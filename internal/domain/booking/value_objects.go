package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDuration = errors.New("duration must be between 1 hour and the configured maximum")
	ErrInvalidPersons  = errors.New("persons must be at least 1")
)

// TimeSlot is the booked half-open window [start, start+durationHours).
// The end is always derived from start and duration here, in one place,
// so the endTime invariant cannot drift across the codebase.
type TimeSlot struct {
	start         time.Time
	durationHours int
}

func NewTimeSlot(start time.Time, durationHours, maxDurationHours int) (TimeSlot, error) {
	if start.IsZero() {
		return TimeSlot{}, errors.New("start time is required")
	}
	if maxDurationHours <= 0 {
		maxDurationHours = 12
	}
	if durationHours < 1 || durationHours > maxDurationHours {
		return TimeSlot{}, ErrInvalidDuration
	}
	return TimeSlot{start: start, durationHours: durationHours}, nil
}

// ReconstructTimeSlot rebuilds a slot from persisted values without
// re-validating duration policy (policy may have changed since creation).
func ReconstructTimeSlot(start time.Time, durationHours int) TimeSlot {
	return TimeSlot{start: start, durationHours: durationHours}
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.start.Add(time.Duration(ts.durationHours) * time.Hour)
}

func (ts TimeSlot) DurationHours() int {
	return ts.durationHours
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.End()) && other.start.Before(ts.End())
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.End().Format(time.RFC3339))
}

// SameCalendarDay reports whether the whole window lies within one
// calendar day, which is what working-hours containment assumes.
func (ts TimeSlot) SameCalendarDay() bool {
	end := ts.End()
	y1, m1, d1 := ts.start.Date()
	y2, m2, d2 := end.Add(-time.Nanosecond).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MinutesOfDay returns the window as minutes from midnight, for
// comparison against a hall.WorkingDay.
func (ts TimeSlot) MinutesOfDay() (startMin, endMin int) {
	startMin = ts.start.Hour()*60 + ts.start.Minute()
	endMin = startMin + ts.durationHours*60
	return startMin, endMin
}

type Note struct {
	value string
}

func NewNote(value string) Note {
	return Note{value: value}
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}
