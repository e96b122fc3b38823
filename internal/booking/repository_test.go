package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOrderClause(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"defaults", Filter{}, "b.start_time DESC"},
		{"whitelisted column", Filter{SortBy: "created_at"}, "b.created_at DESC"},
		{"ascending", Filter{SortBy: "end_time", SortOrder: "ASC"}, "b.end_time ASC"},
		{"lowercase direction", Filter{SortBy: "status", SortOrder: "asc"}, "b.status ASC"},
		{"unknown column falls back", Filter{SortBy: "requester_name"}, "b.start_time DESC"},
		{"hostile column never reaches the clause", Filter{SortBy: "start_time; drop table bookings"}, "b.start_time DESC"},
		{"unknown direction falls back", Filter{SortBy: "start_time", SortOrder: "sideways"}, "b.start_time DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listOrderClause(tt.filter))
		})
	}
}
