package main

import (
	"fmt"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/di"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/structures"
	"github.com/spf13/pflag"
	"os"
)

func main() {
	flags := &structures.CliFlags{}
	pflag.StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "path to the YAML config file")
	pflag.BoolVarP(&flags.DebugMode, "debug", "d", false, "enable debug mode")
	pflag.Parse()

	_, cleanup, err := di.InitApp(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "alertsd: %s\n", err)
		os.Exit(1)
	}
	cleanup()
}
