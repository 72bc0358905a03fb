package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/marten/simbridge/internal/ports"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print a line for each status publish, live",
	Long:  "Watches the data directory with fsnotify and prints mode, pose and collection count every time the producer publishes. Ctrl-C to stop.",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = a.Watch(ctx, func(doc ports.Document) {
		mode, _ := doc.Mode()
		if mode == "" {
			mode = "?"
		}
		line := fmt.Sprintf("mode=%s", mode)
		if pose, ok := doc.Pose(); ok {
			line += fmt.Sprintf(" pos=(%.2f, %.2f)", pose[0], pose[1])
		}
		if n, ok := doc.Int("collected"); ok {
			line += fmt.Sprintf(" collected=%d", n)
		}
		fmt.Println(line)
	})
	if ctx.Err() != nil {
		return nil // clean Ctrl-C
	}
	return err
}
