package cmd

import (
	"github.com/spf13/cobra"

	"github.com/noodahq/nooda/config"
)

var rootCmd = &cobra.Command{
	Use:   "nooda",
	Short: "Render, send and publish data-notebook reports",
	Long: `nooda turns time-indexed tabular data into charts and gets them
in front of people.

It provides tools for:
  - Rendering date-indexed CSV data as daily/weekly/monthly chart panels
  - Sending charts and messages to Slack channels
  - Publishing Jupyter notebooks as standalone HTML reports
  - Keeping a journal of everything that went out`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./nooda.yaml if present)")
}

// loadConfig resolves the active configuration: the --config file, a
// ./nooda.yaml next to the caller, or built-in defaults.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	if cfg, err := config.LoadFromFile("nooda.yaml"); err == nil {
		return cfg, nil
	}
	return config.Default(), nil
}
