package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tphakala/bikeshare-go/cmd/report"
	"github.com/tphakala/bikeshare-go/cmd/serve"
	"github.com/tphakala/bikeshare-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bikeshare",
		Short:   "BikeShare-Go analytics dashboard",
		Long:    "Loads the rental observations dataset and serves filtered analytics as an HTTP API or a terminal report.",
		Version: fmt.Sprintf("%s (built %s)", settings.Version, settings.BuildDate),
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	serveCmd := serve.Command(settings)
	reportCmd := report.Command(settings)

	subcommands := []*cobra.Command{
		serveCmd,
		reportCmd,
	}

	rootCmd.AddCommand(subcommands...)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Parse the command line flags
		if err := cmd.Flags().Parse(args); err != nil {
			return err
		}

		// Re-validate after flags may have overridden config values
		return conf.ValidateSettings(settings)
	}

	return rootCmd
}

// setupFlags configures persistent flags shared by every subcommand.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Dataset.Path, "data", viper.GetString("dataset.path"), "Path to the rental observations file")
	rootCmd.PersistentFlags().BoolVar(&settings.Dataset.StrictTotals, "stricttotals", viper.GetBool("dataset.stricttotals"), "Reject rows where count != casual + registered")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Printf("error binding flags: %v\n", err)
	}
}
