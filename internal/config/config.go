package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the host application configuration. The conversion core is
// configuration-free; everything here concerns the surrounding I/O:
// where the semester document lives, which timezone applies, and where
// exports are written.
type Config struct {
	// Timezone is the IANA campus timezone used for all date math.
	Timezone string `yaml:"timezone" json:"timezone"`

	// SemesterConfigURL is the endpoint of the semester configuration
	// JSON document. Empty means use the compiled-in default window.
	SemesterConfigURL string `yaml:"semester_config_url" json:"semester_config_url"`

	// HolidayYears lists the years to fetch from the external holiday
	// feed. Empty disables the feed.
	HolidayYears []int `yaml:"holiday_years" json:"holiday_years"`

	// ExcludeHolidays controls whether fetched holidays are excluded
	// from the calendar expansion.
	ExcludeHolidays bool `yaml:"exclude_holidays" json:"exclude_holidays"`

	// CalendarOutput is the path of the generated iCalendar file.
	CalendarOutput string `yaml:"calendar_output" json:"calendar_output"`

	// SpreadsheetOutput is the path of the generated workbook.
	SpreadsheetOutput string `yaml:"spreadsheet_output" json:"spreadsheet_output"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Timezone:          "Asia/Taipei",
		SemesterConfigURL: "",
		HolidayYears:      []int{},
		ExcludeHolidays:   false,
		CalendarOutput:    "course_schedule.ics",
		SpreadsheetOutput: "course_schedule.xlsx",
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Timezone == "" {
		c.Timezone = "Asia/Taipei"
	}
	if c.HolidayYears == nil {
		c.HolidayYears = []int{}
	}
	if c.CalendarOutput == "" {
		c.CalendarOutput = "course_schedule.ics"
	}
	if c.SpreadsheetOutput == "" {
		c.SpreadsheetOutput = "course_schedule.xlsx"
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist: write a default config (creating the
//     parent directory if needed) and return the default.
//   - If the file exists: read YAML, unmarshal, normalize defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically
// (temp file + rename) with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".coursecal-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
