package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecal/internal/model"
)

func singleMondayConfig() ExpandConfig {
	loc := time.UTC
	return ExpandConfig{
		Semester: model.SemesterConfig{Spring: window(loc, time.February, 17, time.February, 17, 2025)},
		Location: loc,
	}
}

func TestGenerateEnvelope(t *testing.T) {
	out, res := Generate([]model.Course{mondayCourse()}, singleMondayConfig())

	assert.Len(t, res.Occurrences, 1)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "X-WR-CALNAME:雲科大課表")
	assert.Contains(t, out, "X-WR-TIMEZONE:Asia/Taipei")
	assert.Contains(t, out, "END:VCALENDAR")
}

func TestGenerateEventFields(t *testing.T) {
	out, _ := Generate([]model.Course{mondayCourse()}, singleMondayConfig())

	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "DTSTART;TZID=Asia/Taipei:20250217T081000")
	assert.Contains(t, out, "DTEND;TZID=Asia/Taipei:20250217T100000")
	assert.Contains(t, out, "SUMMARY:[EC501] 資料結構")
	assert.Contains(t, out, "LOCATION:EC501")
	assert.Contains(t, out, "TRANSP:OPAQUE")
	assert.Contains(t, out, "COLOR:black")
	assert.Contains(t, out, "X-MICROSOFT-CDO-BUSYSTATUS:BUSY")
	assert.Contains(t, out, "UID:course-0-0-")
}

func TestGenerateLocationFallback(t *testing.T) {
	c := mondayCourse()
	c.Location = ""
	out, _ := Generate([]model.Course{c}, singleMondayConfig())

	assert.Contains(t, out, "LOCATION:未指定地點")
	assert.Contains(t, out, "SUMMARY:資料結構")
}

func TestGenerateSkipsBrokenCourses(t *testing.T) {
	bad := mondayCourse()
	bad.Day = "someday"

	out, res := Generate([]model.Course{mondayCourse(), bad}, singleMondayConfig())

	assert.Equal(t, 1, strings.Count(out, "BEGIN:VEVENT"))
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "someday", res.Skipped[0].Day)
}

func TestGenerateStableAcrossRuns(t *testing.T) {
	courses := []model.Course{mondayCourse()}
	cfg := singleMondayConfig()

	a, _ := Generate(courses, cfg)
	b, _ := Generate(courses, cfg)

	// Runs differ only in generated UID and timestamp fields, so the
	// stripped outputs must match and the volatile lines must really
	// have been removed.
	stripped := stripVolatile(a)
	assert.NotContains(t, stripped, "UID:")
	assert.NotContains(t, stripped, "DTSTAMP:")
	assert.NotContains(t, stripped, "CREATED:")
	assert.Contains(t, stripped, "BEGIN:VEVENT")
	assert.Equal(t, stripped, stripVolatile(b))
}

func TestGenerateDescriptionNewline(t *testing.T) {
	out, _ := Generate([]model.Course{mondayCourse()}, singleMondayConfig())

	// The serialized DESCRIPTION carries a single-escaped newline
	// between the title and the 地點 line, not a double backslash.
	assert.Contains(t, out, `資料結構\n地點: EC501`)
	assert.NotContains(t, out, `\\n`)
}

// stripVolatile drops the per-run generated fields. The library emits
// LF line endings, so split on "\n" and tolerate any stray "\r".
func stripVolatile(ics string) string {
	var kept []string
	for _, line := range strings.Split(ics, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.HasPrefix(line, "UID:") ||
			strings.HasPrefix(line, "CREATED:") ||
			strings.HasPrefix(line, "DTSTAMP:") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
