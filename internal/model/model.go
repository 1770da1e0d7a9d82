package model

import "time"

// Course represents one class meeting extracted from the schedule grid.
// Multiple courses may share every field except TimeSlot; those are the
// candidates for continuity merging.
type Course struct {
	TimeSlot string // e.g. "A. 08:10 | 09:00"
	Day      string // weekday label, e.g. "星期一"
	Location string // classroom, empty when unknown
	Title    string // course name
}

// TimeRange is the clock portion of a time slot.
type TimeRange struct {
	Start string // HH:MM
	End   string // HH:MM
}

// DateRange is one semester window. A nil boundary disables the window.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Enabled reports whether the window has both boundaries set.
func (r DateRange) Enabled() bool {
	return r.Start != nil && r.End != nil
}

// SemesterConfig holds up to two semester windows. The names are slots,
// not calendar seasons; expansion walks Spring first, then Fall.
type SemesterConfig struct {
	Spring DateRange
	Fall   DateRange
}

// Holiday is one non-school day from the holiday feed or the semester
// configuration document.
type Holiday struct {
	Date        time.Time
	Description string
}

// Occurrence is a merged course bound to one concrete calendar date.
// Occurrences exist only during calendar export.
type Occurrence struct {
	Course Course

	// Start / End carry the date plus the parsed slot clock times,
	// in the configured timezone.
	Start time.Time
	End   time.Time
}
