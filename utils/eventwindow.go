package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/kittiphat/volunteerhub/models"
)

const (
	dateLayout = "2006-01-02"
)

// ErrOutsideEventDays is returned when the participation day falls outside the
// event's start/end dates.
var ErrOutsideEventDays = errors.New("day is outside the event date range")

// DayWindow holds the concrete start and end instants of one event day.
// Multi-day events repeat the same time-of-day window on every calendar day
// between the start and end dates.
type DayWindow struct {
	Start time.Time
	End   time.Time
}

// CheckInOpen returns the earliest accepted check-in instant for the day.
func (w DayWindow) CheckInOpen(early time.Duration) time.Time {
	return w.Start.Add(-early)
}

// CheckInClose returns the latest accepted check-in instant for the day.
func (w DayWindow) CheckInClose(grace time.Duration) time.Time {
	return w.Start.Add(grace)
}

// ParticipationDay renders the calendar date of now in the configured zone.
// It is the dedup key for one attendance session.
func ParticipationDay(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(dateLayout)
}

// EventDayWindow composes the wall-clock components persisted on the event
// with the configured zone into the start/end instants of the given day.
// ISO date strings compare lexicographically, so range checks are plain
// string comparisons.
func EventDayWindow(ev *models.Event, day string, loc *time.Location) (DayWindow, error) {
	if _, err := time.ParseInLocation(dateLayout, day, loc); err != nil {
		return DayWindow{}, fmt.Errorf("invalid participation day %q: %w", day, err)
	}
	if day < ev.StartDate || day > ev.EndDate {
		return DayWindow{}, ErrOutsideEventDays
	}

	start, err := combine(day, ev.StartTime, loc)
	if err != nil {
		return DayWindow{}, fmt.Errorf("event %d start time: %w", ev.ID, err)
	}
	end, err := combine(day, ev.EndTime, loc)
	if err != nil {
		return DayWindow{}, fmt.Errorf("event %d end time: %w", ev.ID, err)
	}
	return DayWindow{Start: start, End: end}, nil
}

// EventSpan returns the overall first-start and last-end instants of the
// event, used for derived listing status.
func EventSpan(ev *models.Event, loc *time.Location) (time.Time, time.Time, error) {
	start, err := combine(ev.StartDate, ev.StartTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := combine(ev.EndDate, ev.EndTime, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

// MinutesUntil reports whole minutes from now until t, floored toward zero.
func MinutesUntil(now, t time.Time) int {
	return int(t.Sub(now).Minutes())
}

// combine parses a "2006-01-02" date plus a "15:04:05" (or "15:04")
// time-of-day into an instant in loc.
func combine(date, clock string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, date+" "+clock, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse wall clock %q %q", date, clock)
}

// ValidWallClock checks the persisted event component formats and the
// start<=end invariant once composed. Used at the admin create/edit boundary.
func ValidWallClock(startDate, endDate, startTime, endTime string, loc *time.Location) error {
	start, err := combine(startDate, startTime, loc)
	if err != nil {
		return err
	}
	end, err := combine(endDate, endTime, loc)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return errors.New("event end is before event start")
	}
	return nil
}
