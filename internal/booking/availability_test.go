package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Base date for testing: 2027-03-14
func day(h, m int) time.Time {
	return time.Date(2027, 3, 14, h, m, 0, 0, time.UTC)
}

func active(startH, startM, endH, endM int) *Booking {
	return &Booking{
		StartTime:   day(startH, startM),
		EndTime:     day(endH, endM),
		Disposition: Approved{ApprovedAt: day(0, 0)},
	}
}

func TestNewWindow(t *testing.T) {
	t.Run("valid window", func(t *testing.T) {
		w, err := NewWindow("08:00", "20:00", "UTC")
		require.NoError(t, err)

		start, end := w.ForDay(day(14, 30))
		assert.Equal(t, day(8, 0), start)
		assert.Equal(t, day(20, 0), end)
	})

	t.Run("close before open", func(t *testing.T) {
		_, err := NewWindow("20:00", "08:00", "UTC")
		assert.Error(t, err)
	})

	t.Run("bad wall clock", func(t *testing.T) {
		_, err := NewWindow("8am", "20:00", "UTC")
		assert.Error(t, err)
	})

	t.Run("bad timezone", func(t *testing.T) {
		_, err := NewWindow("08:00", "20:00", "Mars/Olympus")
		assert.Error(t, err)
	})

	t.Run("window is anchored in its zone", func(t *testing.T) {
		w, err := NewWindow("08:00", "20:00", "America/New_York")
		require.NoError(t, err)

		ny, err := time.LoadLocation("America/New_York")
		require.NoError(t, err)

		// 13:00 UTC on 2027-03-14 is 09:00 in New York (DST).
		start, end := w.ForDay(day(13, 0))
		assert.Equal(t, time.Date(2027, 3, 14, 8, 0, 0, 0, ny), start)
		assert.Equal(t, time.Date(2027, 3, 14, 20, 0, 0, 0, ny), end)
	})
}

func TestFreeSlots(t *testing.T) {
	windowStart := day(8, 0)
	windowEnd := day(20, 0)
	hour := time.Hour

	tests := []struct {
		name     string
		duration time.Duration
		active   []*Booking
		max      int
		want     []Slot
	}{
		{
			name:     "empty day yields the start of the window",
			duration: hour,
			active:   nil,
			max:      3,
			want:     []Slot{{StartTime: day(8, 0), EndTime: day(9, 0)}},
		},
		{
			name:     "gaps between bookings in chronological order",
			duration: hour,
			active:   []*Booking{active(9, 0, 10, 0), active(11, 0, 12, 0)},
			max:      3,
			want: []Slot{
				{StartTime: day(8, 0), EndTime: day(9, 0)},
				{StartTime: day(10, 0), EndTime: day(11, 0)},
				{StartTime: day(12, 0), EndTime: day(13, 0)},
			},
		},
		{
			name:     "max truncates candidates",
			duration: hour,
			active:   []*Booking{active(9, 0, 10, 0), active(11, 0, 12, 0)},
			max:      2,
			want: []Slot{
				{StartTime: day(8, 0), EndTime: day(9, 0)},
				{StartTime: day(10, 0), EndTime: day(11, 0)},
			},
		},
		{
			name:     "gap narrower than duration is skipped",
			duration: 2 * hour,
			active:   []*Booking{active(9, 0, 10, 0), active(11, 0, 12, 0)},
			max:      3,
			want:     []Slot{{StartTime: day(12, 0), EndTime: day(14, 0)}},
		},
		{
			name:     "booking straddling the window start blocks the opening",
			duration: hour,
			active:   []*Booking{active(7, 30, 8, 30)},
			max:      1,
			want:     []Slot{{StartTime: day(8, 30), EndTime: day(9, 30)}},
		},
		{
			name:     "booking straddling the window end blocks the close",
			duration: 30 * time.Minute,
			active:   []*Booking{active(8, 0, 19, 30), active(19, 45, 20, 30)},
			max:      3,
			want:     nil,
		},
		{
			name:     "booking covering the whole window leaves nothing",
			duration: hour,
			active:   []*Booking{active(8, 0, 20, 0)},
			max:      3,
			want:     nil,
		},
		{
			name:     "window narrower than duration yields empty, not error",
			duration: 13 * hour,
			active:   nil,
			max:      3,
			want:     nil,
		},
		{
			name:     "booking outside the window is ignored",
			duration: hour,
			active:   []*Booking{active(6, 0, 7, 0)},
			max:      1,
			want:     []Slot{{StartTime: day(8, 0), EndTime: day(9, 0)}},
		},
		{
			name:     "final gap against the window close",
			duration: hour,
			active:   []*Booking{active(8, 0, 19, 0)},
			max:      3,
			want:     []Slot{{StartTime: day(19, 0), EndTime: day(20, 0)}},
		},
		{
			name:     "non-positive max yields nothing",
			duration: hour,
			active:   nil,
			max:      0,
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FreeSlots(windowStart, windowEnd, tt.duration, tt.active, tt.max)
			assert.Equal(t, tt.want, got)
		})
	}
}
