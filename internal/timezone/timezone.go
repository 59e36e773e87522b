package timezone

import (
	"time"
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

// DisplayLayout is the dd/mm/yyyy hh:mm format used in e-mails.
const DisplayLayout = "02/01/2006 15:04"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Format renders an instant for humans in the given zone.
func Format(t time.Time, tz string) string {
	return t.In(Location(tz)).Format(DisplayLayout)
}

// DayAfter returns [start, end) of the calendar day following now,
// in now's location.
func DayAfter(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
	return start, start.AddDate(0, 0, 1)
}
