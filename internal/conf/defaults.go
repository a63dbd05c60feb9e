// defaults.go: viper defaults for all configuration parameters
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// setDefaultConfig sets the default values for each configuration parameter.
// These mirror the embedded config.yaml; viper falls back to them when a key
// is missing from the user's config file.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	// Main configuration
	viper.SetDefault("main.name", "BikeShare-Go")
	viper.SetDefault("main.timeas24h", true)
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "logs/bikeshare.log")
	viper.SetDefault("main.log.rotation", RotationDaily)
	viper.SetDefault("main.log.maxsize", 10*1024*1024)
	viper.SetDefault("main.log.rotationday", "Sunday")

	// Dataset configuration
	viper.SetDefault("dataset.path", "train.csv")
	viper.SetDefault("dataset.separator", ",")
	viper.SetDefault("dataset.stricttotals", true)
	viper.SetDefault("dataset.snapshotttl", 5*time.Minute)

	// Report configuration
	viper.SetDefault("report.wide", true)

	// Webserver configuration
	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.host", "0.0.0.0")
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "logs/webserver.log")
	viper.SetDefault("webserver.log.rotation", RotationDaily)
	viper.SetDefault("webserver.log.maxsize", 10*1024*1024)
	viper.SetDefault("webserver.log.rotationday", "Sunday")
}
