package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"venue/internal/domains/timeline/model"
)

func interval(startHour, startMin, endHour, endMin int) model.Interval {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	return model.Interval{
		Start: day.Add(time.Duration(startHour)*time.Hour + time.Duration(startMin)*time.Minute),
		End:   day.Add(time.Duration(endHour)*time.Hour + time.Duration(endMin)*time.Minute),
	}
}

func TestInterval_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		interval model.Interval
		want     bool
	}{
		{
			name:     "normal interval",
			interval: interval(18, 0, 19, 30),
			want:     false,
		},
		{
			name:     "zero duration",
			interval: interval(18, 0, 18, 0),
			want:     true,
		},
		{
			name:     "end before start",
			interval: interval(19, 0, 18, 0),
			want:     true,
		},
		{
			name:     "zero value",
			interval: model.Interval{},
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.interval.IsEmpty())
		})
	}
}

func TestInterval_Duration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, interval(18, 0, 19, 30).Duration())
	assert.Equal(t, time.Duration(0), interval(18, 0, 18, 0).Duration())
	assert.Equal(t, time.Duration(0), interval(19, 0, 18, 0).Duration())
}

func TestInterval_Contains(t *testing.T) {
	span := interval(18, 0, 19, 30)
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{
			name: "inside",
			at:   day.Add(18*time.Hour + 45*time.Minute),
			want: true,
		},
		{
			name: "start is included",
			at:   day.Add(18 * time.Hour),
			want: true,
		},
		{
			name: "end is excluded",
			at:   day.Add(19*time.Hour + 30*time.Minute),
			want: false,
		},
		{
			name: "before start",
			at:   day.Add(17 * time.Hour),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, span.Contains(tt.at))
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    model.Interval
		b    model.Interval
		want bool
	}{
		{
			name: "partial overlap",
			a:    interval(18, 0, 19, 30),
			b:    interval(19, 0, 20, 0),
			want: true,
		},
		{
			name: "containment",
			a:    interval(18, 0, 22, 0),
			b:    interval(19, 0, 20, 0),
			want: true,
		},
		{
			name: "identical",
			a:    interval(18, 0, 19, 30),
			b:    interval(18, 0, 19, 30),
			want: true,
		},
		{
			name: "back to back is not an overlap",
			a:    interval(18, 0, 19, 30),
			b:    interval(19, 30, 21, 0),
			want: false,
		},
		{
			name: "disjoint",
			a:    interval(18, 0, 19, 0),
			b:    interval(20, 0, 21, 0),
			want: false,
		},
		{
			name: "empty interval overlaps nothing",
			a:    interval(18, 0, 18, 0),
			b:    interval(17, 0, 19, 0),
			want: false,
		},
		{
			name: "empty interval does not overlap itself",
			a:    interval(18, 0, 18, 0),
			b:    interval(18, 0, 18, 0),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Overlaps(tt.a, tt.b))
			assert.Equal(t, tt.want, model.Overlaps(tt.b, tt.a))
		})
	}
}

func TestToOffset(t *testing.T) {
	rangeStart := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 90*time.Minute, model.ToOffset(rangeStart.Add(90*time.Minute), rangeStart))
	assert.Equal(t, time.Duration(0), model.ToOffset(rangeStart, rangeStart))
	assert.Equal(t, -30*time.Minute, model.ToOffset(rangeStart.Add(-30*time.Minute), rangeStart))
}
