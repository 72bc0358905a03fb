package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var frameCmd = &cobra.Command{
	Use:   "frame",
	Short: "Show the latest camera frame on disk",
	Long:  "Locates the most recent frame in the camera directory. Frame filenames wrap modulo the ring capacity, so recency is by mtime.",
	RunE:  runFrame,
}

func runFrame(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	info, err := a.LatestFrame()
	if err != nil {
		return err
	}
	if info == nil {
		fmt.Println("No camera frames available. Ensure camera capture is enabled.")
		return nil
	}

	fmt.Printf("Latest frame: %s (%.1fs old)\n", info.Path, info.Age.Seconds())
	return nil
}
