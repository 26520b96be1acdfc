package model

import (
	"time"
)

// Interval is a half-open time range [Start, End). Two intervals that only
// touch at an endpoint do not overlap, so back-to-back bookings are legal.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// IsEmpty reports whether the interval covers no time at all.
// An interval with End before or equal to Start is empty.
func (i Interval) IsEmpty() bool {
	return !i.Start.Before(i.End)
}

func (i Interval) Duration() time.Duration {
	if i.IsEmpty() {
		return 0
	}
	return i.End.Sub(i.Start)
}

// Contains reports whether t falls inside the half-open range.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && t.Before(i.End)
}

// Overlaps reports whether a and b share any instant. Empty intervals
// overlap nothing, including themselves.
func Overlaps(a, b Interval) bool {
	if a.IsEmpty() || b.IsEmpty() {
		return false
	}
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// ToOffset maps an absolute time onto a duration offset from rangeStart.
// Times before rangeStart yield a negative offset; clamping is left to the
// rendering layer.
func ToOffset(t, rangeStart time.Time) time.Duration {
	return t.Sub(rangeStart)
}
