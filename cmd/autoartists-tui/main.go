package main

import (
	"fmt"
	"os"

	"github.com/handiism/autoartists/internal/config"
	"github.com/handiism/autoartists/internal/library"
	"github.com/handiism/autoartists/internal/logging"
	"github.com/handiism/autoartists/internal/tui"
	"github.com/spf13/pflag"
)

func main() {
	configFlag := pflag.StringP("config", "c", config.DefaultPath(), "Path to config file")
	libraryFlag := pflag.StringP("library", "l", "", "Library directory (overrides config)")
	pflag.Parse()

	settings, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}
	if *libraryFlag != "" {
		settings.LibraryPath = *libraryFlag
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the UI, so logs only go to a file.
	settings.Log.Output = "file"
	logger, err := logging.New(settings.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := tui.Run(settings, library.New(settings, logger), logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
