package ics

import (
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"

	appLog "coursecal/internal/log"
	"coursecal/internal/model"
	"coursecal/internal/schedule"
	"coursecal/internal/semester"
)

// ExpandConfig controls per-date expansion of merged courses.
type ExpandConfig struct {
	// Semester supplies the one or two date windows to expand against.
	Semester model.SemesterConfig

	// Location is the campus timezone. If nil, Asia/Taipei is used.
	Location *time.Location

	// Holidays, when non-empty, excludes matching dates from the
	// expansion. A nil set reproduces the plain weekly expansion.
	Holidays semester.HolidaySet
}

// ExpandResult carries the expanded occurrences plus any courses that
// were dropped because their time slot or weekday could not be parsed.
type ExpandResult struct {
	Occurrences []model.Occurrence
	Skipped     []model.Course
}

func (cfg *ExpandConfig) location() *time.Location {
	if cfg.Location != nil {
		return cfg.Location
	}
	loc, err := time.LoadLocation(semester.DefaultTimezone)
	if err != nil {
		return time.FixedZone("CST", 8*60*60)
	}
	return loc
}

// Expand enumerates every concrete class date of one merged course
// across the configured semester windows.
//
// Each enabled window is walked in turn, so the result is chronological
// within a window; windows supplied out of order yield a piecewise
// sorted sequence matching the window order, not a globally sorted one.
// ok is false when the course's slot or weekday cannot be parsed, in
// which case the course contributes nothing.
func Expand(course model.Course, cfg ExpandConfig) ([]model.Occurrence, bool) {
	tr, ok := schedule.ParseTimeSlot(course.TimeSlot)
	if !ok {
		appLog.Warn("cannot parse time slot, skipping course",
			"time_slot", course.TimeSlot, "title", course.Title)
		return nil, false
	}
	dayNum := schedule.DayNumber(course.Day)
	if dayNum < 0 {
		appLog.Warn("unrecognized weekday label, skipping course",
			"day", course.Day, "title", course.Title)
		return nil, false
	}

	loc := cfg.location()
	var out []model.Occurrence
	for _, window := range []model.DateRange{cfg.Semester.Spring, cfg.Semester.Fall} {
		if !window.Enabled() {
			continue
		}
		for _, date := range weekdayDates(window, dayNum, loc) {
			if name, isHoliday := cfg.Holidays.Contains(date); isHoliday {
				appLog.Debug("skipping holiday", "date", semester.DateKey(date), "holiday", name)
				continue
			}
			out = append(out, model.Occurrence{
				Course: course,
				Start:  clockOn(date, tr.Start, loc),
				End:    clockOn(date, tr.End, loc),
			})
		}
	}
	return out, true
}

// ExpandAll expands a sequence of merged courses, collecting skipped
// ones rather than failing.
func ExpandAll(courses []model.Course, cfg ExpandConfig) ExpandResult {
	var res ExpandResult
	for _, c := range courses {
		occ, ok := Expand(c, cfg)
		if !ok {
			res.Skipped = append(res.Skipped, c)
			continue
		}
		res.Occurrences = append(res.Occurrences, occ...)
	}
	return res
}

// weekdayDates lists every date in the inclusive window falling on the
// given weekday (Sunday = 0), via a weekly recurrence rule anchored at
// the window start.
func weekdayDates(window model.DateRange, dayNum int, loc *time.Location) []time.Time {
	start := window.Start.In(loc)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	end := window.End.In(loc)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, loc)

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekday(dayNum)},
		Dtstart:   start,
		Until:     end,
	})
	if err != nil {
		appLog.Error("failed to build weekly rule", err, "weekday", dayNum)
		return nil
	}
	return r.All()
}

var rruleWeekdays = [7]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

func rruleWeekday(dayNum int) rrule.Weekday {
	return rruleWeekdays[dayNum]
}

// clockOn binds an HH:MM clock string onto a calendar date.
func clockOn(date time.Time, clock string, loc *time.Location) time.Time {
	parts := strings.SplitN(clock, ":", 2)
	hour, _ := strconv.Atoi(parts[0])
	minute := 0
	if len(parts) == 2 {
		minute, _ = strconv.Atoi(parts[1])
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, loc)
}
