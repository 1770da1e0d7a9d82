package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecal/internal/model"
	"coursecal/internal/semester"
)

func window(loc *time.Location, m1 time.Month, d1 int, m2 time.Month, d2 int, year int) model.DateRange {
	start := time.Date(year, m1, d1, 0, 0, 0, 0, loc)
	end := time.Date(year, m2, d2, 23, 59, 59, 0, loc)
	return model.DateRange{Start: &start, End: &end}
}

func mondayCourse() model.Course {
	return model.Course{
		TimeSlot: "A. 08:10 | 10:00",
		Day:      "星期一",
		Location: "EC501",
		Title:    "資料結構",
	}
}

func TestExpandEveryMondayInWindow(t *testing.T) {
	loc := time.UTC
	cfg := ExpandConfig{
		Semester: model.SemesterConfig{Spring: window(loc, time.February, 17, time.June, 22, 2025)},
		Location: loc,
	}

	occ, ok := Expand(mondayCourse(), cfg)
	require.True(t, ok)
	// 2025-02-17 is a Monday; the last Monday on or before 2025-06-22
	// is 2025-06-16.
	require.Len(t, occ, 18)

	for _, o := range occ {
		assert.Equal(t, time.Monday, o.Start.Weekday())
		assert.Equal(t, 8, o.Start.Hour())
		assert.Equal(t, 10, o.Start.Minute())
		assert.Equal(t, 10, o.End.Hour())
		assert.Equal(t, 0, o.End.Minute())
	}

	first := occ[0].Start
	assert.Equal(t, time.Date(2025, 2, 17, 8, 10, 0, 0, loc), first,
		"window start day itself must be included")
	last := occ[len(occ)-1].Start
	assert.Equal(t, time.Date(2025, 6, 16, 8, 10, 0, 0, loc), last)
}

func TestExpandOtherWeekdayZero(t *testing.T) {
	loc := time.UTC
	cfg := ExpandConfig{
		Semester: model.SemesterConfig{Spring: window(loc, time.February, 17, time.June, 22, 2025)},
		Location: loc,
	}

	c := mondayCourse()
	c.Day = "星期日"
	occ, ok := Expand(c, cfg)
	require.True(t, ok)
	for _, o := range occ {
		assert.Equal(t, time.Sunday, o.Start.Weekday())
	}
	// Sundays in the window must never land on a Monday count; sanity
	// check the boundary: 2025-06-22 itself is a Sunday and included.
	assert.Equal(t, time.Date(2025, 6, 22, 8, 10, 0, 0, loc), occ[len(occ)-1].Start)
}

func TestExpandNilWindowContributesNothing(t *testing.T) {
	loc := time.UTC
	end := time.Date(2025, 6, 22, 23, 59, 59, 0, loc)
	cfg := ExpandConfig{
		Semester: model.SemesterConfig{Spring: model.DateRange{Start: nil, End: &end}},
		Location: loc,
	}

	occ, ok := Expand(mondayCourse(), cfg)
	require.True(t, ok)
	assert.Empty(t, occ)
}

func TestExpandTwoWindowsPiecewise(t *testing.T) {
	loc := time.UTC
	cfg := ExpandConfig{
		Semester: model.SemesterConfig{
			// Windows deliberately out of chronological order: the
			// output follows window order, not a global sort.
			Spring: window(loc, time.September, 8, time.September, 21, 2025),
			Fall:   window(loc, time.March, 3, time.March, 16, 2025),
		},
		Location: loc,
	}

	occ, ok := Expand(mondayCourse(), cfg)
	require.True(t, ok)
	require.Len(t, occ, 4)
	assert.Equal(t, time.September, occ[0].Start.Month())
	assert.Equal(t, time.March, occ[2].Start.Month())
}

func TestExpandSkipsHolidays(t *testing.T) {
	loc := time.UTC
	cfg := ExpandConfig{
		Semester: model.SemesterConfig{Spring: window(loc, time.February, 17, time.June, 22, 2025)},
		Location: loc,
		Holidays: semester.HolidaySet{"20250224": "和平紀念日補假"},
	}

	occ, ok := Expand(mondayCourse(), cfg)
	require.True(t, ok)
	assert.Len(t, occ, 17)
	for _, o := range occ {
		assert.NotEqual(t, "20250224", semester.DateKey(o.Start))
	}
}

func TestExpandUnparseableSlotSkipped(t *testing.T) {
	loc := time.UTC
	cfg := ExpandConfig{
		Semester: model.SemesterConfig{Spring: window(loc, time.February, 17, time.June, 22, 2025)},
		Location: loc,
	}

	c := mondayCourse()
	c.TimeSlot = "上午"
	_, ok := Expand(c, cfg)
	assert.False(t, ok)

	c = mondayCourse()
	c.Day = "someday"
	_, ok = Expand(c, cfg)
	assert.False(t, ok)
}

func TestExpandAllCollectsSkipped(t *testing.T) {
	loc := time.UTC
	cfg := ExpandConfig{
		Semester: model.SemesterConfig{Spring: window(loc, time.February, 17, time.February, 23, 2025)},
		Location: loc,
	}

	bad := mondayCourse()
	bad.TimeSlot = "broken"

	res := ExpandAll([]model.Course{mondayCourse(), bad}, cfg)
	assert.Len(t, res.Occurrences, 1)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "broken", res.Skipped[0].TimeSlot)
}
