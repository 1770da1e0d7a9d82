package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecal/internal/model"
)

func fixtureGrid() [][]string {
	return [][]string{
		{"時間", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六", "星期日"},
		{"A. 08:10 | 10:00", "【地點】EC501\n【行程】資料結構", "", "", "", "", "", ""},
	}
}

func fixtureCourses() []model.Course {
	return []model.Course{
		{TimeSlot: "A. 08:10 | 10:00", Day: "星期一", Location: "EC501", Title: "資料結構"},
	}
}

func TestBuildSheets(t *testing.T) {
	f, err := Build(fixtureGrid(), fixtureCourses())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"課程表", "課程詳細資料"}, f.GetSheetList())
}

func TestBuildGridSheetVerbatim(t *testing.T) {
	f, err := Build(fixtureGrid(), fixtureCourses())
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("課程表", "A1")
	require.NoError(t, err)
	assert.Equal(t, "時間", v)

	v, err = f.GetCellValue("課程表", "B2")
	require.NoError(t, err)
	assert.Equal(t, "【地點】EC501\n【行程】資料結構", v)

	v, err = f.GetCellValue("課程表", "H1")
	require.NoError(t, err)
	assert.Equal(t, "星期日", v)
}

func TestBuildCourseSheet(t *testing.T) {
	f, err := Build(fixtureGrid(), fixtureCourses())
	require.NoError(t, err)
	defer f.Close()

	for cell, want := range map[string]string{
		"A1": "時間", "B1": "星期", "C1": "地點", "D1": "行程",
		"A2": "A. 08:10 | 10:00", "B2": "星期一", "C2": "EC501", "D2": "資料結構",
	} {
		v, err := f.GetCellValue("課程詳細資料", cell)
		require.NoError(t, err)
		assert.Equal(t, want, v, "cell %s", cell)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.xlsx")
	require.NoError(t, Write(path, fixtureGrid(), fixtureCourses()))
	assert.FileExists(t, path)
}
