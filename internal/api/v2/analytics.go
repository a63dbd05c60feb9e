// internal/api/v2/analytics.go
package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/tphakala/bikeshare-go/internal/analytics"
)

// initDashboardRoutes registers the KPI and metadata endpoints
func (c *Controller) initDashboardRoutes() {
	dashboardGroup := c.Group.Group("/dashboard")
	dashboardGroup.GET("/kpis", c.GetKPIs)
	dashboardGroup.GET("/snapshot", c.GetSnapshot)
	dashboardGroup.GET("/meta", c.GetMeta)
}

// initViewRoutes registers one endpoint per aggregate view
func (c *Controller) initViewRoutes() {
	viewsGroup := c.Group.Group("/views")
	viewsGroup.GET("/daily", c.GetDailyTotals)
	viewsGroup.GET("/hourly", c.GetHourlyDemand)
	viewsGroup.GET("/seasons", c.GetSeasonTotals)
	viewsGroup.GET("/scatter", c.GetScatter)
	viewsGroup.GET("/user-split", c.GetUserSplit)
	viewsGroup.GET("/correlation", c.GetCorrelation)
	viewsGroup.GET("/heatmap", c.GetWeeklyHeatmap)
	viewsGroup.GET("/periods", c.GetPeriodMeans)
}

// parseFilterSpec binds a FilterSpec from query parameters. Absent
// categorical parameters leave the predicate inactive; a present-but-empty
// parameter is an explicit empty selection that matches zero rows.
func parseFilterSpec(ctx echo.Context) (analytics.FilterSpec, error) {
	spec := analytics.NewFilterSpec()

	if err := parseAndValidateDateRange(ctx.QueryParam("start_date"), ctx.QueryParam("end_date")); err != nil {
		return spec, err
	}
	if raw := ctx.QueryParam("start_date"); raw != "" {
		spec.StartDate, _ = time.Parse("2006-01-02", raw)
	}
	if raw := ctx.QueryParam("end_date"); raw != "" {
		spec.EndDate, _ = time.Parse("2006-01-02", raw)
	}

	params := ctx.QueryParams()

	if values, ok := params["seasons"]; ok {
		spec.Seasons = splitSelection(values)
	}
	if values, ok := params["weather"]; ok {
		spec.Weather = splitSelection(values)
	}
	if values, ok := params["years"]; ok {
		spec.Years = []int{}
		for _, item := range splitSelection(values) {
			year, err := strconv.Atoi(item)
			if err != nil {
				return spec, echo.NewHTTPError(http.StatusBadRequest, "Invalid years parameter. Must be a list of integers.")
			}
			spec.Years = append(spec.Years, year)
		}
	}

	if raw := ctx.QueryParam("hour_min"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil {
			return spec, echo.NewHTTPError(http.StatusBadRequest, "Invalid hour_min parameter. Must be an integer.")
		}
		spec.HourMin = hour
	}
	if raw := ctx.QueryParam("hour_max"); raw != "" {
		hour, err := strconv.Atoi(raw)
		if err != nil {
			return spec, echo.NewHTTPError(http.StatusBadRequest, "Invalid hour_max parameter. Must be an integer.")
		}
		spec.HourMax = hour
	}

	return spec, nil
}

// splitSelection merges repeated and comma-separated parameter values into
// one selection set. An empty selection stays empty but non-nil.
func splitSelection(values []string) []string {
	selection := []string{}
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				selection = append(selection, item)
			}
		}
	}
	return selection
}

// snapshot binds the filter from the request and computes or fetches the
// matching snapshot. On failure it writes the error response and returns nil.
func (c *Controller) snapshot(ctx echo.Context) (*analytics.Snapshot, error) {
	spec, err := parseFilterSpec(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := c.Engine.Snapshot(spec)
	if err != nil {
		return nil, c.HandleError(ctx, err, "Failed to compute analytics snapshot", http.StatusInternalServerError)
	}
	return snapshot, nil
}

// GetSnapshot handles GET /api/v2/dashboard/snapshot
// Returns the KPIs plus every aggregate view for the given filter in one
// response, the way the dashboard consumes them on each filter change.
func (c *Controller) GetSnapshot(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot)
}

// GetKPIs handles GET /api/v2/dashboard/kpis
func (c *Controller) GetKPIs(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.KPIs)
}

// GetMeta handles GET /api/v2/dashboard/meta
// Returns the dataset date range and the available filter options, used to
// populate the filter widgets.
func (c *Controller) GetMeta(ctx echo.Context) error {
	meta, err := c.Engine.Meta()
	if err != nil {
		return c.HandleError(ctx, err, "Failed to get dataset metadata", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, meta)
}

// GetDailyTotals handles GET /api/v2/views/daily
func (c *Controller) GetDailyTotals(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.Daily)
}

// GetHourlyDemand handles GET /api/v2/views/hourly
func (c *Controller) GetHourlyDemand(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.Hourly)
}

// GetSeasonTotals handles GET /api/v2/views/seasons
func (c *Controller) GetSeasonTotals(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.Seasons)
}

// GetScatter handles GET /api/v2/views/scatter
func (c *Controller) GetScatter(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.Scatter)
}

// GetUserSplit handles GET /api/v2/views/user-split
func (c *Controller) GetUserSplit(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.Users)
}

// GetCorrelation handles GET /api/v2/views/correlation
func (c *Controller) GetCorrelation(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.Correlation)
}

// GetWeeklyHeatmap handles GET /api/v2/views/heatmap
func (c *Controller) GetWeeklyHeatmap(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.Heatmap)
}

// GetPeriodMeans handles GET /api/v2/views/periods
func (c *Controller) GetPeriodMeans(ctx echo.Context) error {
	snapshot, err := c.snapshot(ctx)
	if snapshot == nil {
		return err
	}
	return ctx.JSON(http.StatusOK, snapshot.Periods)
}

// parseAndValidateDateRange checks if provided date strings are valid and in chronological order.
// It returns an echo.HTTPError if validation fails, otherwise nil.
func parseAndValidateDateRange(startDateStr, endDateStr string) error {
	var start, end time.Time
	var err error

	// Validate start date format if provided
	if startDateStr != "" {
		start, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid start_date format. Use YYYY-MM-DD")
		}
	}

	// Validate end date format if provided
	if endDateStr != "" {
		end, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid end_date format. Use YYYY-MM-DD")
		}
	}

	// Ensure chronological order only if both dates are provided and valid
	if startDateStr != "" && endDateStr != "" && !start.IsZero() && !end.IsZero() {
		if start.After(end) {
			return echo.NewHTTPError(http.StatusBadRequest, "`start_date` cannot be after `end_date`")
		}
	}

	return nil
}
