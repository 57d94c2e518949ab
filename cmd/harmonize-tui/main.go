package main

import (
	"flag"
	"fmt"
	"os"

	"harmonize/internal/config"
	"harmonize/internal/tui"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file")
		verboseFlag = flag.Bool("verbose", false, "Show skipped files in the log")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Usage: harmonize-tui [options] SOURCE TARGET")
		flag.PrintDefaults()
		os.Exit(1)
	}

	settings, err := loadSettings(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	settings.SourceDir = flag.Arg(0)
	settings.TargetDir = flag.Arg(1)

	if err := tui.Run(settings, *verboseFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadSettings(path string) (*config.Settings, error) {
	if path != "" {
		return config.Load(path)
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.DefaultSettings(), nil
	}
	return config.Load(path)
}
