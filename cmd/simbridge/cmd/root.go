package cmd

import (
	"fmt"

	"github.com/marten/simbridge/internal/app"
	"github.com/spf13/cobra"
)

var (
	flagData   string
	flagConfig string
)

var rootCmd = &cobra.Command{
	Use:   "simbridge",
	Short: "simbridge — file-backed simulation bridge tools",
	Long:  "Inspect simulation state, monitor robot behavior, and send control commands through a shared data directory.",
}

// newApp builds the consumer app from flags and optional config file.
func newApp() (*app.App, error) {
	cfg, err := app.LoadConfig(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagData != "" {
		cfg.DataDir = flagData
	}
	return app.New(cfg), nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagData, "data", "d", "", "shared data directory (default \"data\")")
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to simbridge.toml")

	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(sensorsCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(logsCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(screenshotCmd)
	rootCmd.AddCommand(resetStateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simulateCmd)
}

// noData prints the consistent message for commands that found a healthy
// channel with nothing on it yet.
func noData(what string) error {
	fmt.Printf("No %s available. Is the simulation running?\n", what)
	return nil
}
