package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"time"

	"coursecal/internal/config"
	"coursecal/internal/ics"
	appLog "coursecal/internal/log"
	"coursecal/internal/schedule"
	"coursecal/internal/semester"
	"coursecal/internal/table"
	"coursecal/internal/xlsx"
)

type flagConfig struct {
	configPath  string
	inputPath   string
	icsPath     string
	xlsxPath    string
	semesterURL string
	debug       bool
}

func main() {
	flags := parseFlags()
	if flags.debug {
		appLog.SetLevel(appLog.LevelDebug)
	}

	if flags.inputPath == "" {
		appLog.Error("no input file given", nil)
		flag.Usage()
		os.Exit(2)
	}

	conf, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI overrides.
	if flags.icsPath != "" {
		conf.CalendarOutput = flags.icsPath
	}
	if flags.xlsxPath != "" {
		conf.SpreadsheetOutput = flags.xlsxPath
	}
	if flags.semesterURL != "" {
		conf.SemesterConfigURL = flags.semesterURL
	}

	loc, err := time.LoadLocation(conf.Timezone)
	if err != nil {
		appLog.Error("invalid timezone", err, "timezone", conf.Timezone)
		os.Exit(1)
	}

	appLog.Info("effective config",
		"input", flags.inputPath,
		"timezone", conf.Timezone,
		"semester_url", conf.SemesterConfigURL,
		"calendar_output", conf.CalendarOutput,
		"spreadsheet_output", conf.SpreadsheetOutput,
		"exclude_holidays", conf.ExcludeHolidays,
	)

	ctx := context.Background()

	in, err := os.Open(flags.inputPath)
	if err != nil {
		appLog.Error("cannot open input file", err, "path", flags.inputPath)
		os.Exit(1)
	}
	raw, err := table.Extract(in)
	in.Close()
	if err != nil {
		appLog.Error("cannot extract schedule table", err, "path", flags.inputPath)
		os.Exit(1)
	}

	grid, err := schedule.Normalize(raw)
	if err != nil {
		appLog.Error("cannot normalize schedule", err, "path", flags.inputPath)
		os.Exit(1)
	}

	extracted := schedule.Extract(grid)
	merged := schedule.MergeContinuous(extracted)
	appLog.Info("schedule processed", "extracted", len(extracted), "merged", len(merged))

	loader := semester.NewLoader(conf.SemesterConfigURL, loc)
	semCfg, docHolidays := loader.Load(ctx)

	holidays := semester.HolidaySet{}
	holidays.AddHolidays(docHolidays)
	if conf.ExcludeHolidays {
		client := &http.Client{Timeout: 15 * time.Second}
		for _, year := range conf.HolidayYears {
			holidays.AddDays(semester.FetchHolidays(ctx, client, year))
		}
	}
	if len(holidays) == 0 {
		holidays = nil
	}

	expandCfg := ics.ExpandConfig{
		Semester: semCfg,
		Location: loc,
		Holidays: holidays,
	}

	calendar, result := ics.Generate(merged, expandCfg)
	if err := os.WriteFile(conf.CalendarOutput, []byte(calendar), 0o644); err != nil {
		appLog.Error("cannot write calendar file", err, "path", conf.CalendarOutput)
		os.Exit(1)
	}
	for _, skipped := range result.Skipped {
		appLog.Warn("course omitted from calendar",
			"time_slot", skipped.TimeSlot, "day", skipped.Day, "title", skipped.Title)
	}

	if err := xlsx.Write(conf.SpreadsheetOutput, grid.Table(), merged); err != nil {
		appLog.Error("cannot write spreadsheet", err, "path", conf.SpreadsheetOutput)
		os.Exit(1)
	}

	appLog.Info("conversion complete",
		"events", len(result.Occurrences),
		"calendar", conf.CalendarOutput,
		"spreadsheet", conf.SpreadsheetOutput,
	)
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "coursecal.yaml", "Path to config file")
	flag.StringVar(&cfg.inputPath, "input", "", "Schedule document as extracted HTML")
	flag.StringVar(&cfg.icsPath, "ics", "", "Calendar output path (overrides config if set)")
	flag.StringVar(&cfg.xlsxPath, "xlsx", "", "Spreadsheet output path (overrides config if set)")
	flag.StringVar(&cfg.semesterURL, "semester-url", "", "Semester config URL (overrides config if set)")
	flag.BoolVar(&cfg.debug, "debug", false, "Enable debug logging")

	flag.Parse()

	return cfg
}
