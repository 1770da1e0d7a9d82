package schedule

import (
	"coursecal/internal/model"
)

// Extract walks a normalized grid and emits one course per populated
// day cell, row-major. Cells whose parse produced neither a classroom
// nor a title (including verbatim-fallback cells) yield no record.
func Extract(g *Grid) []model.Course {
	var courses []model.Course
	for _, r := range g.Rows {
		for j, c := range r.Cells {
			if c.Location == "" && c.Title == "" {
				continue
			}
			courses = append(courses, model.Course{
				TimeSlot: r.TimeSlot,
				Day:      dayLabels[j+1],
				Location: c.Location,
				Title:    c.Title,
			})
		}
	}
	return courses
}
