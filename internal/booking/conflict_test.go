package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2027, 3, 14, h, m, 0, 0, time.UTC)
	}

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{
			name:   "disjoint intervals",
			aStart: at(9, 0), aEnd: at(10, 0), bStart: at(11, 0), bEnd: at(12, 0),
			want: false,
		},
		{
			name:   "adjacent intervals do not overlap",
			aStart: at(10, 0), aEnd: at(11, 0), bStart: at(11, 0), bEnd: at(12, 0),
			want: false,
		},
		{
			name:   "adjacent intervals reversed",
			aStart: at(11, 0), aEnd: at(12, 0), bStart: at(10, 0), bEnd: at(11, 0),
			want: false,
		},
		{
			name:   "partial overlap at end",
			aStart: at(9, 0), aEnd: at(10, 30), bStart: at(10, 0), bEnd: at(11, 0),
			want: true,
		},
		{
			name:   "partial overlap at start",
			aStart: at(10, 30), aEnd: at(11, 30), bStart: at(10, 0), bEnd: at(11, 0),
			want: true,
		},
		{
			name:   "contained interval",
			aStart: at(10, 30), aEnd: at(10, 45), bStart: at(10, 0), bEnd: at(11, 0),
			want: true,
		},
		{
			name:   "containing interval",
			aStart: at(9, 0), aEnd: at(13, 0), bStart: at(10, 0), bEnd: at(12, 0),
			want: true,
		},
		{
			name:   "identical intervals",
			aStart: at(10, 0), aEnd: at(11, 0), bStart: at(10, 0), bEnd: at(11, 0),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// The test is symmetric in its two intervals.
			assert.Equal(t, tt.want, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}
