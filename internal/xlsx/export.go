package xlsx

import (
	"github.com/xuri/excelize/v2"

	appLog "coursecal/internal/log"
	"coursecal/internal/model"
)

const (
	sheetGrid    = "課程表"
	sheetCourses = "課程詳細資料"
)

// Build assembles the two-sheet workbook: the normalized grid verbatim
// on the first sheet and one flat row per merged course on the second.
func Build(grid [][]string, courses []model.Course) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", sheetGrid); err != nil {
		return nil, err
	}
	if err := writeRows(f, sheetGrid, grid); err != nil {
		return nil, err
	}
	// Time column narrow, one wide column per weekday.
	if err := f.SetColWidth(sheetGrid, "A", "A", 10); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheetGrid, "B", "H", 30); err != nil {
		return nil, err
	}
	if err := wrapCells(f, sheetGrid, len(grid), 8); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sheetCourses); err != nil {
		return nil, err
	}
	records := [][]string{{"時間", "星期", "地點", "行程"}}
	for _, c := range courses {
		records = append(records, []string{c.TimeSlot, c.Day, c.Location, c.Title})
	}
	if err := writeRows(f, sheetCourses, records); err != nil {
		return nil, err
	}
	for i, width := range []float64{10, 8, 10, 40} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetCourses, col, col, width); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// Write builds the workbook and saves it to path.
func Write(path string, grid [][]string, courses []model.Course) error {
	f, err := Build(grid, courses)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return err
	}
	appLog.Info("spreadsheet written", "path", path, "grid_rows", len(grid), "course_count", len(courses))
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]string) error {
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func wrapCells(f *excelize.File, sheet string, rows, cols int) error {
	if rows == 0 || cols == 0 {
		return nil
	}
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, rows)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
