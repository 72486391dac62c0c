// Package schedule computes reminder fire times and polls the store for due
// reminders.
package schedule

import (
	"fmt"
	"time"
)

// ParseHHMM parses a minute-precision 24h wall clock string such as "09:05".
func ParseHHMM(s string) (hour, minute int, err error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, 0, fmt.Errorf("invalid wall clock time %q", s)
	}

	_, err = fmt.Sscanf(s, "%02d:%02d", &hour, &minute)

	if err != nil {
		return 0, 0, fmt.Errorf("invalid wall clock time %q: %w", s, err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("wall clock time %q out of range", s)
	}

	return hour, minute, nil
}

// ScheduledTime computes the absolute fire time of a reminder: the next
// occurrence of dayOfWeek (0 = Sunday) at startTime, minus minutesBefore.
//
// Pure function of now and its inputs. When the target day is today and the
// computed reminder time has already passed, the occurrence rolls forward a
// week. For occurrences on a later day the result is returned as computed
// even if minutesBefore pushes it into the past; classifying such a reminder
// as missed is the poller's job.
func ScheduledTime(now time.Time, dayOfWeek int, startTime string, minutesBefore int) (time.Time, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return time.Time{}, fmt.Errorf("day of week %d out of range", dayOfWeek)
	}

	if minutesBefore <= 0 {
		return time.Time{}, fmt.Errorf("minutes before %d must be positive", minutesBefore)
	}

	hour, minute, err := ParseHHMM(startTime)

	if err != nil {
		return time.Time{}, err
	}

	daysUntil := (dayOfWeek - int(now.Weekday()) + 7) % 7

	occ := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location()).AddDate(0, 0, daysUntil)
	sched := occ.Add(-time.Duration(minutesBefore) * time.Minute)

	if daysUntil == 0 && sched.Before(now) {
		sched = sched.AddDate(0, 0, 7)
	}

	return sched, nil
}
