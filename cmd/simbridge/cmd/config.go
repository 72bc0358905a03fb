package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show resolved configuration and data paths",
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	published := "no"
	if _, err := os.Stat(a.Paths.Status); err == nil {
		published = "yes"
	}

	fmt.Println("simbridge config")
	fmt.Printf("  Data dir:     %s\n", a.Paths.Root)
	fmt.Printf("  Status file:  %s (published: %s)\n", a.Paths.Status, published)
	fmt.Printf("  Command file: %s\n", a.Paths.Commands)
	fmt.Printf("  Log file:     %s\n", a.Paths.ControllerLog)
	fmt.Printf("  Archive:      %s\n", a.Paths.ArchiveDB)
	fmt.Printf("  Monitor:      every %s, max %s\n", a.Cfg.MonitorInterval(), a.Cfg.MonitorMax())
	fmt.Printf("  Producer:     throttle %d, frame ring %d\n", a.Cfg.Throttle, a.Cfg.FrameCapacity)
	return nil
}
