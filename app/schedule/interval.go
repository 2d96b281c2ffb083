package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

const minutesPerDay = 24 * 60

// Interval is one meeting's occupancy on one day, half-open over minute
// offsets from midnight: [Begin, End).
type Interval struct {
	Begin int
	End   int
}

// Contains reports whether the half-open interval covers the given minute.
func (iv Interval) Contains(minute int) bool {
	return minute >= iv.Begin && minute < iv.End
}

// InvalidTimeError reports a wall-clock time string that could not be
// parsed as HH:MM:SS.
type InvalidTimeError struct {
	Value string
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid class time %q: want HH:MM:SS", e.Value)
}

// ParseClock converts a 24-hour HH:MM:SS string into minutes since
// midnight. Seconds are accepted and discarded.
func ParseClock(value string) (int, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return 0, &InvalidTimeError{Value: value}
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, &InvalidTimeError{Value: value}
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, &InvalidTimeError{Value: value}
	}

	if _, err := strconv.Atoi(parts[2]); err != nil {
		return 0, &InvalidTimeError{Value: value}
	}

	return hour*60 + minute, nil
}

// BuildInterval converts class start/end times into a same-day minute
// interval. Zero-duration meetings are sentinel rows in the export and
// contribute no interval: ok is false and err is nil.
func BuildInterval(startTime, endTime string) (iv Interval, ok bool, err error) {
	begin, err := ParseClock(startTime)
	if err != nil {
		return Interval{}, false, err
	}

	end, err := ParseClock(endTime)
	if err != nil {
		return Interval{}, false, err
	}

	if begin == end {
		return Interval{}, false, nil
	}

	if end < begin || begin < 0 || end >= minutesPerDay {
		return Interval{}, false, &InvalidTimeError{Value: startTime + "-" + endTime}
	}

	return Interval{Begin: begin, End: end}, true, nil
}
