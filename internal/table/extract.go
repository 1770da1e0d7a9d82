package table

import (
	"errors"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	appLog "coursecal/internal/log"
)

// ErrNoTable is returned when the document contains no table at all.
var ErrNoTable = errors.New("table: no table found in document")

var spaceRe = regexp.MustCompile(`\s+`)

// Extract pulls the schedule table out of an HTML document (the output
// of the external word-processing decoder) as rows of cell text.
//
// When the document carries several tables the one with the most cells
// is assumed to be the timetable. Merged cells are expanded: a cell
// with colspan N appears N times in its row, so downstream stages see a
// rectangular grid. Rows without any content are dropped.
func Extract(r io.Reader) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, ErrNoTable
	}

	var schedule *goquery.Selection
	maxCells := -1
	tables.Each(func(i int, t *goquery.Selection) {
		n := t.Find("td, th").Length()
		appLog.Debug("candidate table", "index", i, "cell_count", n)
		if n > maxCells {
			maxCells = n
			schedule = t
		}
	})

	var rows [][]string
	schedule.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		hasContent := false
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			text := spaceRe.ReplaceAllString(strings.TrimSpace(cell.Text()), " ")
			if text != "" {
				hasContent = true
			}
			span := 1
			if v, ok := cell.Attr("colspan"); ok {
				if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 1 {
					span = n
				}
			}
			for i := 0; i < span; i++ {
				row = append(row, text)
			}
		})
		if len(row) > 0 && hasContent {
			rows = append(rows, row)
		}
	})

	appLog.Info("table extracted", "table_count", tables.Length(), "row_count", len(rows))
	return rows, nil
}
