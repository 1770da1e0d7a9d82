package semester

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	appLog "coursecal/internal/log"
	"coursecal/internal/model"
)

// holidayFeedURL is the per-year government holiday calendar mirror.
const holidayFeedURL = "https://cdn.jsdelivr.net/gh/ruyut/TaiwanCalendar/data/%d.json"

// DayInfo is one day of the external holiday feed. Date uses the feed's
// compact YYYYMMDD form.
type DayInfo struct {
	Date        string `json:"date"`
	Week        string `json:"week"`
	IsHoliday   bool   `json:"isHoliday"`
	Description string `json:"description"`
}

// HolidaySet maps compact YYYYMMDD date keys to a holiday description.
// Only described holidays count; plain weekends in the feed carry no
// description and are not school-day exclusions.
type HolidaySet map[string]string

// DateKey renders the compact date key for a calendar date.
func DateKey(t time.Time) string {
	return t.Format("20060102")
}

// Contains reports whether the date is a known holiday, with its name.
func (s HolidaySet) Contains(t time.Time) (string, bool) {
	if s == nil {
		return "", false
	}
	name, ok := s[DateKey(t)]
	return name, ok
}

// AddDays folds holiday-feed days into the set.
func (s HolidaySet) AddDays(days []DayInfo) {
	for _, d := range days {
		if d.IsHoliday && d.Description != "" {
			s[d.Date] = d.Description
		}
	}
}

// AddHolidays folds semester-document holidays into the set.
func (s HolidaySet) AddHolidays(holidays []model.Holiday) {
	for _, h := range holidays {
		desc := h.Description
		if desc == "" {
			desc = "放假"
		}
		s[DateKey(h.Date)] = desc
	}
}

// FetchHolidays downloads the holiday feed for one year. Failures are
// logged and return an empty list so conversion continues without
// holiday exclusion.
func FetchHolidays(ctx context.Context, client *http.Client, year int) []DayInfo {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	url := fmt.Sprintf(holidayFeedURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		appLog.Error("holiday feed request failed", err, "year", year)
		return nil
	}

	resp, err := client.Do(req)
	if err != nil {
		appLog.Error("holiday feed fetch failed", err, "year", year)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		appLog.Error("holiday feed fetch failed", errors.New(resp.Status), "year", year)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		appLog.Error("holiday feed read failed", err, "year", year)
		return nil
	}

	var days []DayInfo
	if err := json.Unmarshal(body, &days); err != nil {
		appLog.Error("holiday feed malformed", err, "year", year)
		return nil
	}

	appLog.Info("holiday feed loaded", "year", year, "day_count", len(days))
	return days
}
