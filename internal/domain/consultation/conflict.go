package consultation

import "time"

type ConflictMode string

const (
	ConflictExact    ConflictMode = "exact"
	ConflictInterval ConflictMode = "interval"
)

func ParseConflictMode(s string) ConflictMode {
	if ConflictMode(s) == ConflictInterval {
		return ConflictInterval
	}
	return ConflictExact
}

// Overlaps reports whether [aStart, aStart+aDur) and [bStart, bStart+bDur)
// collide. Zero durations degrade to instant equality.
func Overlaps(aStart time.Time, aDur time.Duration, bStart time.Time, bDur time.Duration) bool {
	if aDur <= 0 || bDur <= 0 {
		return aStart.Equal(bStart)
	}
	return aStart.Before(bStart.Add(bDur)) && bStart.Before(aStart.Add(aDur))
}
