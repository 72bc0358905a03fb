package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/marten/simbridge/internal/app"
	"github.com/spf13/cobra"
)

var flagMonitorSeconds int

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Watch the simulation for a while and report behavior",
	Long:  "Samples the status document at a fixed interval, then summarizes mode transitions, distance traveled, and task progress. Ctrl-C reports what was collected so far.",
	RunE:  runMonitor,
}

func init() {
	monitorCmd.Flags().IntVarP(&flagMonitorSeconds, "duration", "t", 20, "seconds to monitor")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	window := time.Duration(flagMonitorSeconds) * time.Second
	report, err := a.Monitor(ctx, window)
	if err != nil && ctx.Err() == nil {
		return err
	}

	fmt.Print(app.FormatReport(report, window))
	return nil
}
