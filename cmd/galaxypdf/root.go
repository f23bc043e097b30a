package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lvillar/galaxypdf/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "galaxypdf",
	Short: "Merge and split PDF files",
	Long: `Galaxy PDF merges several PDF files into one and splits a PDF into
single pages or page ranges. It runs as a web page, on the command line,
or as an MCP server for AI assistants.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig reads and validates the configuration and builds the logger it
// describes. --verbose raises the level to debug.
func loadConfig() (*config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	log, err := cfg.NewLogger()
	if err != nil {
		return nil, nil, err
	}
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return cfg, log, nil
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
