// Package report implements the one-shot terminal report command.
package report

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tphakala/bikeshare-go/internal/analytics"
	"github.com/tphakala/bikeshare-go/internal/conf"
	"github.com/tphakala/bikeshare-go/internal/dataset"
	"github.com/tphakala/bikeshare-go/internal/report"
)

type reportFlags struct {
	startDate string
	endDate   string
	seasons   []string
	weather   []string
	years     []int
	hours     string
}

// Command creates the report command which renders the dashboard as text.
func Command(settings *conf.Settings) *cobra.Command {
	flags := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the dashboard as a terminal report",
		Long:  "Load the dataset, apply the given filter and print the KPIs and every aggregate view as text tables.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, settings, flags)
		},
	}

	if err := setupFlags(cmd, flags, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

func setupFlags(cmd *cobra.Command, flags *reportFlags, settings *conf.Settings) error {
	cmd.Flags().StringVar(&flags.startDate, "start", "", "Filter start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.endDate, "end", "", "Filter end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&flags.seasons, "seasons", nil, "Accepted season labels (default all)")
	cmd.Flags().StringSliceVar(&flags.weather, "weather", nil, "Accepted weather labels (default all)")
	cmd.Flags().IntSliceVar(&flags.years, "years", nil, "Accepted years (default all)")
	cmd.Flags().StringVar(&flags.hours, "hours", "0-23", "Inclusive hour range, e.g. 8-18")
	cmd.Flags().BoolVar(&settings.Report.Wide, "wide", viper.GetBool("report.wide"), "Include the day-by-hour heatmap")

	if err := viper.BindPFlag("report.wide", cmd.Flags().Lookup("wide")); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}

func runReport(cmd *cobra.Command, settings *conf.Settings, flags *reportFlags) error {
	spec, err := buildFilterSpec(cmd, flags)
	if err != nil {
		return err
	}

	store := dataset.NewStore(settings, nil)
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	engine := analytics.NewEngine(store, settings.Dataset.SnapshotTTL, nil)
	snapshot, err := engine.Snapshot(spec)
	if err != nil {
		return fmt.Errorf("computing snapshot: %w", err)
	}

	meta, err := store.Meta()
	if err != nil {
		return err
	}

	renderer := report.NewRenderer(os.Stdout, settings)
	return renderer.Render(meta, snapshot)
}

// buildFilterSpec converts the command flags to a FilterSpec. Flags the user
// did not set leave their predicate inactive.
func buildFilterSpec(cmd *cobra.Command, flags *reportFlags) (analytics.FilterSpec, error) {
	spec := analytics.NewFilterSpec()

	if flags.startDate != "" {
		t, err := time.Parse("2006-01-02", flags.startDate)
		if err != nil {
			return spec, fmt.Errorf("invalid --start date %q, use YYYY-MM-DD", flags.startDate)
		}
		spec.StartDate = t
	}
	if flags.endDate != "" {
		t, err := time.Parse("2006-01-02", flags.endDate)
		if err != nil {
			return spec, fmt.Errorf("invalid --end date %q, use YYYY-MM-DD", flags.endDate)
		}
		spec.EndDate = t
	}

	// Only flags the user passed become active predicates; an explicitly
	// empty list excludes every row, matching the dashboard widgets
	if cmd.Flags().Changed("seasons") {
		spec.Seasons = flags.seasons
		if spec.Seasons == nil {
			spec.Seasons = []string{}
		}
	}
	if cmd.Flags().Changed("weather") {
		spec.Weather = flags.weather
		if spec.Weather == nil {
			spec.Weather = []string{}
		}
	}
	if cmd.Flags().Changed("years") {
		spec.Years = flags.years
		if spec.Years == nil {
			spec.Years = []int{}
		}
	}

	hourMin, hourMax, err := parseHourRange(flags.hours)
	if err != nil {
		return spec, err
	}
	spec.HourMin = hourMin
	spec.HourMax = hourMax

	return spec, nil
}

// parseHourRange parses "8-18" style inclusive hour ranges. A single hour
// like "8" means exactly that hour.
func parseHourRange(raw string) (hourMin, hourMax int, err error) {
	parts := strings.SplitN(raw, "-", 2)

	hourMin, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --hours value %q, use e.g. 8-18", raw)
	}

	if len(parts) == 1 {
		return hourMin, hourMin, nil
	}

	hourMax, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --hours value %q, use e.g. 8-18", raw)
	}

	return hourMin, hourMax, nil
}
