package booking

import "time"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect: aStart < bEnd AND bStart < aEnd. The single
// symmetric test covers all overlap shapes (start-inside, end-inside,
// containment) and keeps adjacent intervals non-conflicting.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
