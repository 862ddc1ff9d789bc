package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidInterval = errors.New("interval end must be after start")
	ErrIntervalTooLong = errors.New("interval exceeds maximum duration")
)

// TimeSlot is a half-open interval [start, end): a reservation occupies its
// start instant but not its end instant, so back-to-back slots never overlap.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidInterval
	}
	return TimeSlot{start: start, end: end}, nil
}

// NewBoundedTimeSlot applies the duration cap on top of the ordering check.
// The cap is exact: end - start compared against max, no rounding.
func NewBoundedTimeSlot(start, end time.Time, max time.Duration) (TimeSlot, error) {
	slot, err := NewTimeSlot(start, end)
	if err != nil {
		return TimeSlot{}, err
	}
	if max > 0 && slot.Duration() > max {
		return TimeSlot{}, ErrIntervalTooLong
	}
	return slot, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps implements the half-open conflict predicate:
// [s1,e1) and [s2,e2) conflict iff s1 < e2 && s2 < e1.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

// Contains reports whether t falls inside the slot (start inclusive, end exclusive).
func (ts TimeSlot) Contains(t time.Time) bool {
	return !t.Before(ts.start) && t.Before(ts.end)
}

// HasEnded reports whether the slot lies entirely in the past at now.
func (ts TimeSlot) HasEnded(now time.Time) bool {
	return !ts.end.After(now)
}

func (ts TimeSlot) String() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}
