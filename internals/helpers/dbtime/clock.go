// file: internals/helpers/dbtime/clock.go
package dbtime

import "time"

// Today is the current calendar day in loc (UTC when loc is nil).
func Today(loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return DateOf(time.Now().In(loc))
}

// TodayFunc binds Today to a location, for services that take a clock.
func TodayFunc(loc *time.Location) func() Date {
	return func() Date { return Today(loc) }
}

// FixedToday is a clock that never moves.
func FixedToday(d Date) func() Date {
	return func() Date { return d }
}
