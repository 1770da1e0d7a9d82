package schedule

import (
	"regexp"
	"strings"
)

// Sentinel rendered in the location line when a cell has no classroom.
const noLocation = "無"

const (
	locationTag = "【地點】"
	titleTag    = "【行程】"
)

var (
	locationRe = regexp.MustCompile(`\(([^)]+)\)`)
	// A standalone 4-5 digit run is the institutional course code.
	courseCodeRe = regexp.MustCompile(`\b\d{4,5}\b`)
	// Leading class/section label: word(s) ending in a department or
	// program marker, optionally followed by one capital letter or digit.
	classLabelRe = regexp.MustCompile(`^([\p{L}\p{N}_\s]+?(系|班|中心|通識|資管|AI|一|二|三|四|五)[A-Z0-9]?\s*)`)
	multiSpaceRe = regexp.MustCompile(`\s{2,}`)
)

// Cell is the structured form of one schedule grid cell. Raw keeps the
// original text so that cells that defeat parsing are never dropped.
type Cell struct {
	Location string
	Title    string
	Raw      string
}

// Empty reports whether the cell carries no content at all.
func (c Cell) Empty() bool {
	return c.Location == "" && c.Title == "" && strings.TrimSpace(c.Raw) == ""
}

// ParseCell splits a raw grid cell into classroom and course title.
//
// The classroom is the first parenthesized group. The remaining text is
// cleaned of the course code and of a leading class/section label, then
// whitespace-collapsed. When nothing survives cleaning, Location and
// Title stay empty and Raw preserves the verbatim content.
func ParseCell(raw string) Cell {
	c := Cell{Raw: raw}
	if strings.TrimSpace(raw) == "" {
		return Cell{}
	}

	rest := strings.TrimSpace(raw)

	if m := locationRe.FindStringSubmatch(rest); m != nil {
		c.Location = m[1]
		rest = strings.TrimSpace(strings.Replace(rest, m[0], "", 1))
	}

	if m := courseCodeRe.FindString(rest); m != "" {
		rest = strings.TrimSpace(strings.Replace(rest, m, "", 1))
	}

	if m := classLabelRe.FindString(rest); m != "" {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, m))
	}

	rest = multiSpaceRe.ReplaceAllString(rest, " ")
	c.Title = strings.TrimSpace(rest)

	return c
}

// Render produces the tagged two-line display form of a cell:
//
//	【地點】EC501
//	【行程】資料結構
//
// Empty cells render as the empty string. Cells whose parse yielded
// nothing fall back to the verbatim raw text so real content is never
// silently lost.
func (c Cell) Render() string {
	if c.Empty() {
		return ""
	}
	if c.Location == "" && c.Title == "" {
		return strings.TrimSpace(c.Raw)
	}

	var b strings.Builder
	b.WriteString(locationTag)
	if c.Location != "" {
		b.WriteString(c.Location)
	} else {
		b.WriteString(noLocation)
	}
	if c.Title != "" {
		b.WriteString("\n")
		b.WriteString(titleTag)
		b.WriteString(c.Title)
	}
	return b.String()
}

// FormatCell is the end-to-end cell formatter: raw text in, tagged
// display text out.
func FormatCell(raw string) string {
	return ParseCell(raw).Render()
}

// ParseRendered recovers location and title from the tagged display
// form by fixed-prefix matching. The 無 sentinel normalizes to an empty
// location. Text without tags yields two empty strings.
func ParseRendered(s string) (location, title string) {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, locationTag):
			location = strings.TrimSpace(strings.TrimPrefix(line, locationTag))
		case strings.HasPrefix(line, titleTag):
			title = strings.TrimSpace(strings.TrimPrefix(line, titleTag))
		}
	}
	if location == noLocation {
		location = ""
	}
	return location, title
}
