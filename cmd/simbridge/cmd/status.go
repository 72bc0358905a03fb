package cmd

import (
	"fmt"

	"github.com/marten/simbridge/internal/app"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current robot state",
	Long:  "Reads the status document and prints position, mode, and custom state fields published by the controller.",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
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
		return noData("robot state")
	}

	fmt.Print(app.FormatRobotState(doc))
	return nil
}
