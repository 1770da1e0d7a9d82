package schedule

import (
	"regexp"

	"coursecal/internal/model"
)

var (
	timeSlotRe = regexp.MustCompile(`[A-Z]\.\s*(\d{1,2}:\d{2})\s*\|\s*(\d{1,2}:\d{2})`)
	timeCodeRe = regexp.MustCompile(`([A-Z])\.`)
)

// ParseTimeSlot parses a slot label of the form "A. 08:10 | 09:00" into
// its clock range. ok is false when the label does not match.
func ParseTimeSlot(slot string) (model.TimeRange, bool) {
	m := timeSlotRe.FindStringSubmatch(slot)
	if m == nil {
		return model.TimeRange{}, false
	}
	return model.TimeRange{Start: m[1], End: m[2]}, true
}

// TimeCode extracts the single-letter period code from a slot label.
// Codes are ordered by letter value; consecutive letters denote
// consecutive real periods by institutional convention.
func TimeCode(slot string) (byte, bool) {
	m := timeCodeRe.FindStringSubmatch(slot)
	if m == nil {
		return 0, false
	}
	return m[1][0], true
}

// dayLabels maps a day column index (1..7) to its fixed weekday label.
var dayLabels = [8]string{"", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"}

// dayNumbers maps weekday labels (full and short forms) to ISO-style
// weekday numbers with Sunday = 0, matching time.Weekday.
var dayNumbers = map[string]int{
	"星期一": 1,
	"星期二": 2,
	"星期三": 3,
	"星期四": 4,
	"星期五": 5,
	"星期六": 6,
	"星期日": 0,
	"一":   1,
	"二":   2,
	"三":   3,
	"四":   4,
	"五":   5,
	"六":   6,
	"日":   0,
}

// DayNumber converts a weekday label into a weekday number (Sunday = 0).
// Unknown labels return -1.
func DayNumber(day string) int {
	if n, ok := dayNumbers[day]; ok {
		return n
	}
	return -1
}
