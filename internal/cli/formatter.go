package cli

import (
	"fmt"
	"math"
	"strings"

	"overtime-tracker/internal/config"
	"overtime-tracker/internal/domain"
	"overtime-tracker/internal/services"
)

// Formatter renders history views for the terminal
type Formatter struct {
	dateFormat string
	chartWidth int
}

// NewFormatter creates a formatter using the display settings of cfg
func NewFormatter(cfg *config.Config) *Formatter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	width := cfg.Display.ChartWidth
	if width < 2 {
		width = 2
	}
	return &Formatter{dateFormat: cfg.Display.DateFormat, chartWidth: width}
}

// Hours renders "2.00h → 3.00h"
func (f *Formatter) Hours(raw, converted float64) string {
	return fmt.Sprintf("%s → %s",
		styleRaw.Render(fmt.Sprintf("%.2fh", raw)),
		styleConverted.Render(fmt.Sprintf("%.2fh", converted)))
}

// MonthHeader renders the month label followed by its totals
func (f *Formatter) MonthHeader(month services.MonthSummary) string {
	return fmt.Sprintf("%s  %s", styleHeader.Render(month.Label), f.Hours(month.Totals.Raw, month.Totals.Converted))
}

// EntryLine renders one entry with its id, day, hours and notes
func (f *Formatter) EntryLine(entry domain.TimeEntry) string {
	line := fmt.Sprintf("%s  %s  %s",
		styleDim.Render(fmt.Sprintf("#%d", entry.ID)),
		f.day(entry.Date),
		f.Hours(entry.RawHours, entry.ConvertedHours))
	if entry.Notes != "" {
		line += "  " + entry.Notes
	}
	return line
}

func (f *Formatter) day(date string) string {
	t, err := domain.ParseDate(date, nil)
	if err != nil {
		return date
	}
	return t.Format(f.dateFormat)
}

// Summary renders the grand totals line
func (f *Formatter) Summary(totals services.Totals) string {
	return styleBold.Render(fmt.Sprintf("Total Overtime: %.2fh | Total Business Time: %.2fh", totals.Raw, totals.Converted))
}

// DailyChart renders one horizontal bar per day, scaled to the largest day
func (f *Formatter) DailyChart(daily []services.DailyTotal) string {
	if len(daily) == 0 {
		return ""
	}

	labelWidth := 0
	peak := 0.0
	for _, d := range daily {
		labelWidth = max(labelWidth, len(d.Label))
		peak = math.Max(peak, d.RawHours)
	}

	var sb strings.Builder
	for _, d := range daily {
		filled := 0
		if peak > 0 {
			filled = int(math.Round(d.RawHours / peak * float64(f.chartWidth)))
		}
		if d.RawHours > 0 && filled == 0 {
			filled = 1
		}
		bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, f.chartWidth-filled)
		fmt.Fprintf(&sb, "%-*s %s %.2fh\n", labelWidth, d.Label, styleRaw.Render(bar), d.RawHours)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// ProportionBar renders the raw and converted shares of their combined total
func (f *Formatter) ProportionBar(pie services.RawVsConverted) string {
	total := pie.Raw + pie.Converted
	if total <= 0 {
		return ""
	}

	rawShare := pie.Raw / total
	rawCells := int(math.Round(rawShare * float64(f.chartWidth)))
	bar := styleRaw.Render(strings.Repeat(filledBlock, rawCells)) +
		styleConverted.Render(strings.Repeat(filledBlock, f.chartWidth-rawCells))

	return fmt.Sprintf("Raw %3.0f%% %s %3.0f%% Converted", rawShare*100, bar, (1-rawShare)*100)
}

// History renders a complete history view
func (f *Formatter) History(view *services.HistoryView) string {
	var sb strings.Builder

	rangeLine := fmt.Sprintf("%s to %s", view.Range.StartDate(), view.Range.EndDate())
	sb.WriteString(styleDim.Render(rangeLine))
	sb.WriteString("\n")

	if view.IsEmpty() {
		sb.WriteString(styleWarn.Render("No entries found."))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, month := range view.Months {
		sb.WriteString("\n")
		sb.WriteString(f.MonthHeader(month))
		sb.WriteString("\n")
		for _, entry := range month.Entries {
			sb.WriteString("  ")
			sb.WriteString(f.EntryLine(entry))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(f.Summary(view.GrandTotals))
	sb.WriteString("\n\n")
	sb.WriteString(f.DailyChart(view.Charts.Daily))
	sb.WriteString("\n\n")
	sb.WriteString(f.ProportionBar(view.Charts.Pie))
	sb.WriteString("\n")

	return sb.String()
}
