package engine

import "time"

// DateLayout is the storage and display format of a user day.
const DateLayout = "2006-01-02"

// CurrentDay returns the user day that now falls in. Days start at the reset time
// in loc rather than at midnight, so 02:00 with a 03:00 reset still belongs to the
// previous date.
func CurrentDay(now time.Time, loc *time.Location, reset ResetTime) string {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	resetPoint := time.Date(local.Year(), local.Month(), local.Day(), reset.Hour, reset.Minute, 0, 0, loc)
	if local.Before(resetPoint) {
		local = local.AddDate(0, 0, -1)
	}
	return local.Format(DateLayout)
}

// NextReset returns the instant the user day containing now ends.
func NextReset(now time.Time, loc *time.Location, reset ResetTime) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	resetPoint := time.Date(local.Year(), local.Month(), local.Day(), reset.Hour, reset.Minute, 0, 0, loc)
	if !local.Before(resetPoint) {
		resetPoint = resetPoint.AddDate(0, 0, 1)
	}
	return resetPoint
}

// LoadLocation resolves an IANA zone name, falling back to UTC for unknown or
// empty names.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
