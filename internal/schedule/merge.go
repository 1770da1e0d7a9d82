package schedule

import (
	"fmt"
	"sort"

	appLog "coursecal/internal/log"
	"coursecal/internal/model"
)

type mergeKey struct {
	day      string
	title    string
	location string
}

// MergeContinuous collapses runs of temporally adjacent identical
// meetings into single contiguous blocks.
//
// Courses are grouped by exact (day, title, location) equality and each
// group is sorted by its time-slot letter code. A group merges only
// when every consecutive pair of codes differs by exactly one letter;
// any gap, or an unparseable boundary slot, passes the whole group
// through unchanged. The operation is idempotent: a merged record forms
// a singleton group on re-entry.
//
// Group order follows first appearance in the input, so output order is
// deterministic.
func MergeContinuous(courses []model.Course) []model.Course {
	if len(courses) <= 1 {
		return courses
	}

	groups := make(map[mergeKey][]model.Course)
	var order []mergeKey
	for _, c := range courses {
		k := mergeKey{day: c.Day, title: c.Title, location: c.Location}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], c)
	}

	merged := make([]model.Course, 0, len(courses))
	for _, k := range order {
		merged = append(merged, mergeGroup(groups[k])...)
	}
	return merged
}

func mergeGroup(group []model.Course) []model.Course {
	if len(group) == 1 {
		return group
	}

	sort.SliceStable(group, func(i, j int) bool {
		ci, _ := TimeCode(group[i].TimeSlot)
		cj, _ := TimeCode(group[j].TimeSlot)
		return ci < cj
	})

	codes := make([]byte, len(group))
	for i, c := range group {
		code, ok := TimeCode(c.TimeSlot)
		if !ok {
			appLog.Warn("group member has no period code, not merging",
				"day", c.Day, "title", c.Title, "time_slot", c.TimeSlot)
			return group
		}
		codes[i] = code
	}
	for i := 0; i < len(codes)-1; i++ {
		if codes[i+1]-codes[i] != 1 {
			return group
		}
	}

	first := group[0]
	last := group[len(group)-1]
	firstRange, ok1 := ParseTimeSlot(first.TimeSlot)
	lastRange, ok2 := ParseTimeSlot(last.TimeSlot)
	if !ok1 || !ok2 {
		appLog.Warn("continuous run has unparseable boundary slot, not merging",
			"day", first.Day, "title", first.Title,
			"first_slot", first.TimeSlot, "last_slot", last.TimeSlot)
		return group
	}

	out := first
	out.TimeSlot = fmt.Sprintf("%c. %s | %s", codes[0], firstRange.Start, lastRange.End)
	return []model.Course{out}
}
