package schedule

import (
	"errors"
	"regexp"
	"strings"

	appLog "coursecal/internal/log"
)

// ErrNoSchedule is returned when no recognizable schedule structure can
// be found in the extracted table data.
var ErrNoSchedule = errors.New("schedule: no recognizable timetable structure")

// Header is the fixed first row of every normalized grid, regardless of
// what the source document's header actually said.
var Header = [8]string{"時間", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"}

var (
	codedTimeRe = regexp.MustCompile(`^[A-Z]\.\s*\d{1,2}:\d{2}`)
	bareTimeRe  = regexp.MustCompile(`^\d{1,2}:\d{2}`)
)

// Row is one time-slot row of a normalized grid: the slot label plus a
// cell for each of the seven weekdays.
type Row struct {
	TimeSlot string
	Cells    [7]Cell
}

// Grid is the normalized schedule table. The display rendering always
// has exactly 8 columns per row.
type Grid struct {
	Rows []Row
}

// Normalize reshapes a raw extracted table into the fixed weekly grid
// layout.
//
// The header row is located by, in order: a cell containing the weekday
// marker 星期, a cell starting with a coded or bare time pattern, and
// finally row 0. Rows below the header with fewer than two cells are
// treated as separator noise and skipped. Missing day columns are
// padded with empty cells; extra columns are clipped.
func Normalize(raw [][]string) (*Grid, error) {
	headerIdx := findHeaderRow(raw)
	if headerIdx < 0 {
		return nil, ErrNoSchedule
	}

	g := &Grid{}
	for _, row := range raw[headerIdx+1:] {
		if len(row) < 2 {
			continue
		}
		r := Row{TimeSlot: strings.TrimSpace(row[0])}
		for j := 1; j <= 7 && j < len(row); j++ {
			r.Cells[j-1] = ParseCell(row[j])
		}
		g.Rows = append(g.Rows, r)
	}

	appLog.Debug("grid normalized", "header_row", headerIdx, "data_rows", len(g.Rows))
	return g, nil
}

func findHeaderRow(raw [][]string) int {
	for i, row := range raw {
		for _, cell := range row {
			if strings.Contains(cell, "星期") {
				return i
			}
		}
	}
	for i, row := range raw {
		for _, cell := range row {
			if codedTimeRe.MatchString(cell) || bareTimeRe.MatchString(cell) {
				return i
			}
		}
	}
	if len(raw) > 0 {
		appLog.Debug("no header marker found, using first row as header")
		return 0
	}
	return -1
}

// Table renders the grid as rows of strings: the fixed header followed
// by one 8-column row per time slot, day cells in their tagged display
// form. This is the shape exported to the spreadsheet grid sheet.
func (g *Grid) Table() [][]string {
	out := make([][]string, 0, len(g.Rows)+1)
	out = append(out, Header[:])
	for _, r := range g.Rows {
		row := make([]string, 8)
		row[0] = r.TimeSlot
		for j, c := range r.Cells {
			row[j+1] = c.Render()
		}
		out = append(out, row)
	}
	return out
}
