// Package report renders dashboard snapshots as text tables, the terminal
// variant of the dashboard.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tphakala/bikeshare-go/internal/analytics"
	"github.com/tphakala/bikeshare-go/internal/conf"
	"github.com/tphakala/bikeshare-go/internal/dataset"
)

// Renderer writes a snapshot to a writer as aligned text tables.
type Renderer struct {
	w       io.Writer
	printer *message.Printer
	wide    bool
	name    string
}

// NewRenderer creates a renderer writing to w. The message printer formats
// large totals with thousands separators.
func NewRenderer(w io.Writer, settings *conf.Settings) *Renderer {
	return &Renderer{
		w:       w,
		printer: message.NewPrinter(language.English),
		wide:    settings.Report.Wide,
		name:    settings.Main.Name,
	}
}

// Render writes the full report: dataset summary, KPI block and every
// aggregate view. Scatter points are summarized by count only; a point cloud
// has no useful text form.
func (r *Renderer) Render(meta dataset.Meta, snapshot *analytics.Snapshot) error {
	r.header(meta, snapshot)
	r.kpis(&snapshot.KPIs)
	r.dailyTotals(snapshot.Daily)
	r.hourlyDemand(snapshot.Hourly)
	r.seasonTotals(snapshot.Seasons)
	r.userSplit(&snapshot.Users)
	r.periodMeans(snapshot.Periods)
	r.correlation(&snapshot.Correlation)
	if r.wide {
		r.heatmap(&snapshot.Heatmap)
	}
	return nil
}

func (r *Renderer) section(title string) {
	fmt.Fprintf(r.w, "\n%s\n", title)
	for range title {
		fmt.Fprint(r.w, "-")
	}
	fmt.Fprintln(r.w)
}

func (r *Renderer) header(meta dataset.Meta, snapshot *analytics.Snapshot) {
	fmt.Fprintf(r.w, "%s - Bike Sharing Analysis\n", r.name)
	fmt.Fprintf(r.w, "Dataset: %s to %s, %d rows (%d after filter)\n",
		meta.StartDate.Format("2006-01-02"), meta.EndDate.Format("2006-01-02"),
		meta.Rows, snapshot.Rows)
	fmt.Fprintf(r.w, "Scatter points available: %d\n", len(snapshot.Scatter))
}

func (r *Renderer) kpis(kpis *analytics.KPIs) {
	r.section("Key Metrics")
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total Rentals\t%s\n", r.printer.Sprintf("%d", kpis.TotalRentals))
	fmt.Fprintf(tw, "Avg Temp\t%.1f °C\n", kpis.AvgTemp)
	fmt.Fprintf(tw, "Avg Humidity\t%.1f %%\n", kpis.AvgHumidity)
	fmt.Fprintf(tw, "Peak Hour\t%d:00\n", kpis.PeakHour)
	tw.Flush()
}

func (r *Renderer) dailyTotals(daily []analytics.DailyTotal) {
	r.section("Daily Rentals")
	if len(daily) == 0 {
		fmt.Fprintln(r.w, "no data for this filter")
		return
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Date\tRentals")
	for _, d := range daily {
		fmt.Fprintf(tw, "%s\t%s\n", d.Date, r.printer.Sprintf("%d", d.Count))
	}
	tw.Flush()
}

func (r *Renderer) hourlyDemand(hourly []analytics.HourlyWorkdayMean) {
	r.section("Hourly Demand (Working vs Non-Working)")
	if len(hourly) == 0 {
		fmt.Fprintln(r.w, "no data for this filter")
		return
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Hour\tDay Type\tAvg Rentals")
	for _, h := range hourly {
		fmt.Fprintf(tw, "%02d:00\t%s\t%.1f\n", h.Hour, h.DayType, h.MeanCount)
	}
	tw.Flush()
}

func (r *Renderer) seasonTotals(seasons []analytics.SeasonTotal) {
	r.section("Rentals by Season")
	if len(seasons) == 0 {
		fmt.Fprintln(r.w, "no data for this filter")
		return
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Season\tRentals")
	for _, s := range seasons {
		fmt.Fprintf(tw, "%s\t%s\n", s.Season, r.printer.Sprintf("%d", s.Count))
	}
	tw.Flush()
}

func (r *Renderer) userSplit(users *analytics.UserSplit) {
	r.section("Casual vs Registered")
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Casual\t%s\n", r.printer.Sprintf("%d", users.Casual))
	fmt.Fprintf(tw, "Registered\t%s\n", r.printer.Sprintf("%d", users.Registered))
	tw.Flush()
}

func (r *Renderer) periodMeans(periods []analytics.PeriodMean) {
	r.section("Rentals by Period of Day")
	if len(periods) == 0 {
		fmt.Fprintln(r.w, "no data for this filter")
		return
	}
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Period\tAvg Rentals")
	for _, p := range periods {
		fmt.Fprintf(tw, "%s\t%.1f\n", p.Period, p.MeanCount)
	}
	tw.Flush()
}

func (r *Renderer) correlation(corr *analytics.CorrelationMatrix) {
	r.section("Correlation Matrix")
	tw := tabwriter.NewWriter(r.w, 0, 4, 2, ' ', 0)

	fmt.Fprint(tw, "\t")
	for _, field := range corr.Fields {
		fmt.Fprintf(tw, "%s\t", field)
	}
	fmt.Fprintln(tw)

	for i, field := range corr.Fields {
		fmt.Fprintf(tw, "%s\t", field)
		for j := range corr.Fields {
			fmt.Fprintf(tw, "%.2f\t", corr.Matrix[i][j])
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

func (r *Renderer) heatmap(heatmap *analytics.WeeklyHeatmap) {
	r.section("Weekly Usage Patterns (Day vs Hour)")
	tw := tabwriter.NewWriter(r.w, 0, 4, 1, ' ', 0)

	fmt.Fprint(tw, "\t")
	for _, hour := range heatmap.Hours {
		fmt.Fprintf(tw, "%02d\t", hour)
	}
	fmt.Fprintln(tw)

	for day, dayName := range heatmap.Days {
		fmt.Fprintf(tw, "%s\t", dayName)
		for hour := range heatmap.Hours {
			cell := heatmap.Cells[day][hour]
			if cell == nil {
				// Gaps stay visible as dashes, not zeros
				fmt.Fprint(tw, "-\t")
			} else {
				fmt.Fprintf(tw, "%.0f\t", *cell)
			}
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
