package main

import (
	"fmt"
	"os"

	"github.com/tphakala/bikeshare-go/cmd"
	"github.com/tphakala/bikeshare-go/internal/buildinfo"
	"github.com/tphakala/bikeshare-go/internal/conf"
	"github.com/tphakala/bikeshare-go/internal/logging"
)

// Populated by the build
var version = "dev"
var buildDate = "unknown"

func main() {
	logging.Init()

	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	build := &buildinfo.Context{Version: version, BuildDate: buildDate}
	settings.Version = build.GetVersion()
	settings.BuildDate = build.GetBuildDate()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
