package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "coursecal/internal/log"
	"coursecal/internal/model"
)

const (
	calendarName = "雲科大課表"
	timezoneID   = "Asia/Taipei"
	productID    = "-//YunTech//Course Calendar//TW"
	uidDomain    = "yuntech.edu.tw"

	// Local date-time form carried alongside a TZID parameter.
	icalLayout = "20060102T150405"
)

// Generate renders merged courses into iCalendar text: one VEVENT per
// expanded class date, timestamps tagged with the campus TZID, summary
// of the form "[location] title" and fixed busy/opaque/color metadata.
//
// Two runs over identical input differ only in UID and CREATED/DTSTAMP
// fields. Courses whose slot or weekday cannot be parsed are reported
// in the result's Skipped list and omitted from the calendar.
func Generate(courses []model.Course, cfg ExpandConfig) (string, ExpandResult) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(productID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")
	cal.SetXWRCalName(calendarName)
	cal.SetXWRTimezone(timezoneID)

	now := time.Now()
	var res ExpandResult

	for i, course := range courses {
		occurrences, ok := Expand(course, cfg)
		if !ok {
			res.Skipped = append(res.Skipped, course)
			continue
		}
		res.Occurrences = append(res.Occurrences, occurrences...)

		for j, occ := range occurrences {
			uid := fmt.Sprintf("course-%d-%d-%d@%s", i, j, now.UnixMilli(), uidDomain)
			addEvent(cal, uid, occ, now)
		}
	}

	appLog.Info("calendar generated",
		"course_count", len(courses),
		"event_count", len(res.Occurrences),
		"skipped_count", len(res.Skipped))

	return cal.Serialize(), res
}

func addEvent(cal *ical.Calendar, uid string, occ model.Occurrence, now time.Time) {
	title := occ.Course.Title
	if title == "" {
		title = "課程"
	}
	summary := title
	if occ.Course.Location != "" {
		summary = fmt.Sprintf("[%s] %s", occ.Course.Location, title)
	}

	location := occ.Course.Location
	if location == "" {
		location = "未指定地點"
	}

	description := calendarName + " - " + occ.Course.Title
	if occ.Course.Location != "" {
		// Real newline here; the library escapes it to \n on serialize.
		description += "\n地點: " + occ.Course.Location
	}

	ev := cal.AddEvent(uid)
	tzid := &ical.KeyValues{Key: "TZID", Value: []string{timezoneID}}
	ev.SetProperty(ical.ComponentPropertyDtStart, occ.Start.Format(icalLayout), tzid)
	ev.SetProperty(ical.ComponentPropertyDtEnd, occ.End.Format(icalLayout), tzid)
	ev.SetProperty(ical.ComponentPropertySummary, summary)
	ev.SetProperty(ical.ComponentPropertyLocation, location)
	ev.SetProperty(ical.ComponentPropertyDescription, description)
	ev.SetTimeTransparency(ical.TransparencyOpaque)
	ev.SetProperty("COLOR", "black")
	ev.SetProperty("X-APPLE-CALENDAR-COLOR", "#000000")
	ev.SetProperty("X-MICROSOFT-CDO-BUSYSTATUS", "BUSY")
	ev.SetProperty("X-MICROSOFT-CDO-IMPORTANCE", "1")
	ev.SetCreatedTime(now)
	ev.SetDtStampTime(now)
}
