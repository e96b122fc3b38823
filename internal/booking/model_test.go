package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
		want bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusApproved, false},
		{StatusApproved, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusCancelled, false},
		{StatusCancelled, StatusApproved, false},
		{StatusCancelled, StatusPending, false},
		{StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestDispositionStatus(t *testing.T) {
	assert.Equal(t, StatusPending, Pending{}.Status())
	assert.Equal(t, StatusApproved, Approved{ApprovedBy: "u1", ApprovedAt: time.Now()}.Status())
	assert.Equal(t, StatusRejected, Rejected{Reason: "double booked"}.Status())
	assert.Equal(t, StatusCancelled, Cancelled{}.Status())
}

func TestBookingActive(t *testing.T) {
	b := &Booking{Disposition: Pending{}}
	assert.True(t, b.Active())

	b.Disposition = Approved{ApprovedAt: time.Now()}
	assert.True(t, b.Active())

	b.Disposition = Rejected{Reason: "no"}
	assert.False(t, b.Active())

	b.Disposition = Cancelled{}
	assert.False(t, b.Active())
}
