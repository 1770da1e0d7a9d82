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

// DefaultTimezone is the fixed campus timezone; semester dates in the
// configuration document are interpreted in this zone.
const DefaultTimezone = "Asia/Taipei"

// document is the wire shape of the fetched semester configuration.
type document struct {
	Spring   *rangeDoc    `json:"spring"`
	Fall     *rangeDoc    `json:"fall"`
	Holidays []holidayDoc `json:"holidays"`
}

type rangeDoc struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type holidayDoc struct {
	Name  string    `json:"name"`
	Date  string    `json:"date,omitempty"`
	Range *rangeDoc `json:"range,omitempty"`
}

// Default returns the compiled-in fallback semester window used when no
// configuration document can be fetched.
func Default(loc *time.Location) model.SemesterConfig {
	start := time.Date(2025, 9, 8, 0, 0, 0, 0, loc)
	end := endOfDay(time.Date(2026, 1, 11, 0, 0, 0, 0, loc))
	return model.SemesterConfig{
		Spring: model.DateRange{Start: &start, End: &end},
	}
}

// Parse decodes a semester configuration document. Window start dates
// are anchored at local midnight and end dates at 23:59:59, so both
// boundary days are included in expansion.
func Parse(data []byte, loc *time.Location) (model.SemesterConfig, []model.Holiday, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.SemesterConfig{}, nil, err
	}

	var cfg model.SemesterConfig
	var perr error
	cfg.Spring, perr = parseRange(doc.Spring, loc)
	if perr != nil {
		return model.SemesterConfig{}, nil, perr
	}
	cfg.Fall, perr = parseRange(doc.Fall, loc)
	if perr != nil {
		return model.SemesterConfig{}, nil, perr
	}

	holidays, perr := parseHolidays(doc.Holidays, loc)
	if perr != nil {
		return model.SemesterConfig{}, nil, perr
	}

	return cfg, holidays, nil
}

func parseRange(r *rangeDoc, loc *time.Location) (model.DateRange, error) {
	var out model.DateRange
	if r == nil {
		return out, nil
	}
	if r.Start != "" {
		t, err := time.ParseInLocation("2006-01-02", r.Start, loc)
		if err != nil {
			return out, fmt.Errorf("semester: bad start date %q: %w", r.Start, err)
		}
		out.Start = &t
	}
	if r.End != "" {
		t, err := time.ParseInLocation("2006-01-02", r.End, loc)
		if err != nil {
			return out, fmt.Errorf("semester: bad end date %q: %w", r.End, err)
		}
		e := endOfDay(t)
		out.End = &e
	}
	return out, nil
}

func parseHolidays(docs []holidayDoc, loc *time.Location) ([]model.Holiday, error) {
	var out []model.Holiday
	for _, h := range docs {
		switch {
		case h.Date != "":
			t, err := time.ParseInLocation("2006-01-02", h.Date, loc)
			if err != nil {
				return nil, fmt.Errorf("semester: bad holiday date %q: %w", h.Date, err)
			}
			out = append(out, model.Holiday{Date: t, Description: h.Name})
		case h.Range != nil && h.Range.Start != "" && h.Range.End != "":
			start, err := time.ParseInLocation("2006-01-02", h.Range.Start, loc)
			if err != nil {
				return nil, fmt.Errorf("semester: bad holiday range start %q: %w", h.Range.Start, err)
			}
			end, err := time.ParseInLocation("2006-01-02", h.Range.End, loc)
			if err != nil {
				return nil, fmt.Errorf("semester: bad holiday range end %q: %w", h.Range.End, err)
			}
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				out = append(out, model.Holiday{Date: d, Description: h.Name})
			}
		}
	}
	return out, nil
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}

// Loader fetches the semester configuration document over HTTP and
// falls back to the compiled-in default on any failure.
type Loader struct {
	client *http.Client
	url    string
	loc    *time.Location
}

// NewLoader creates a Loader for the given document URL. An empty URL
// makes Load return the default configuration without a network call.
func NewLoader(url string, loc *time.Location) *Loader {
	return &Loader{
		client: &http.Client{Timeout: 15 * time.Second},
		url:    url,
		loc:    loc,
	}
}

// Load returns the active semester configuration plus any holidays the
// document declares. Fetch or decode failures are logged and degrade to
// the default window; Load never fails the conversion.
func (l *Loader) Load(ctx context.Context) (model.SemesterConfig, []model.Holiday) {
	if l.url == "" {
		return Default(l.loc), nil
	}

	data, err := l.fetch(ctx)
	if err != nil {
		appLog.Error("semester config fetch failed, using default window", err, "url", l.url)
		return Default(l.loc), nil
	}

	cfg, holidays, err := Parse(data, l.loc)
	if err != nil {
		appLog.Error("semester config malformed, using default window", err, "url", l.url)
		return Default(l.loc), nil
	}

	appLog.Info("semester config loaded", "url", l.url, "holiday_count", len(holidays))
	return cfg, holidays
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(resp.Status)
	}
	return io.ReadAll(resp.Body)
}
