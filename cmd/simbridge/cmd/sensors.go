package cmd

import (
	"fmt"

	"github.com/marten/simbridge/internal/app"
	"github.com/spf13/cobra"
)

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Show current sensor readings",
	Long:  "Prints lidar minima, distance sensors, and camera recognition objects from the latest status document.",
	RunE:  runSensors,
}

func runSensors(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.Status()
	if err != nil {
		return err
	}
	if doc == nil {
		return noData("sensor data")
	}

	fmt.Print(app.FormatSensors(doc))
	return nil
}
