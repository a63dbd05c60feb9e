// Package serve implements the dashboard API server command.
package serve

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tphakala/bikeshare-go/internal/analytics"
	api "github.com/tphakala/bikeshare-go/internal/api/v2"
	"github.com/tphakala/bikeshare-go/internal/conf"
	"github.com/tphakala/bikeshare-go/internal/dataset"
	"github.com/tphakala/bikeshare-go/internal/logging"
	"github.com/tphakala/bikeshare-go/internal/observability"
)

// Command creates the serve command which runs the dashboard API server.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard analytics API",
		Long:  "Load the dataset and serve KPIs and aggregate views over HTTP for the dashboard frontend.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(settings)
		},
	}

	if err := setupFlags(cmd, settings); err != nil {
		fmt.Printf("error setting up flags: %v\n", err)
		os.Exit(1)
	}

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) error {
	cmd.Flags().StringVar(&settings.WebServer.Host, "host", viper.GetString("webserver.host"), "Host to bind the API server to")
	cmd.Flags().StringVar(&settings.WebServer.Port, "port", viper.GetString("webserver.port"), "Port to bind the API server to")

	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}

func runServer(settings *conf.Settings) error {
	logger := log.New(os.Stderr, "", log.LstdFlags)

	metrics, err := observability.NewMetrics()
	if err != nil {
		return fmt.Errorf("initializing metrics: %w", err)
	}

	// The dataset must load before the server starts; a missing or malformed
	// file refuses startup rather than serving empty analytics
	store := dataset.NewStore(settings, metrics.Dataset)
	if err := store.Load(); err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}

	engine := analytics.NewEngine(store, settings.Dataset.SnapshotTTL, metrics.Analytics)

	e := echo.New()
	e.HideBanner = true

	controller, err := api.New(e, store, engine, settings, logger, metrics)
	if err != nil {
		return fmt.Errorf("initializing API controller: %w", err)
	}
	defer controller.Shutdown()

	addr := settings.WebServer.Host + ":" + settings.WebServer.Port

	errChan := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	logging.Info("dashboard API listening", "addr", addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logging.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}
