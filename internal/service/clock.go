package service

import "time"

// Vendor start times arrive as local wall-clock readings and are stored
// with a UTC label (Garmin's startTimeLocal, Strava's start_date_local).
// Elapsed-time and calendar math against those timestamps must use the
// same convention, so every service entry point passes `now` through
// wallClock before comparing.

// wallClock reinterprets t's wall-clock reading as UTC, discarding the
// host zone's offset
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// calendarDate returns midnight of t's wall-clock calendar day
func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
