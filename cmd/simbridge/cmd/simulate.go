package cmd

import (
	"context"
	"fmt"
	"math"
	"os/signal"
	"syscall"
	"time"

	"github.com/marten/simbridge/internal/bridge"
	"github.com/marten/simbridge/internal/domain/grid"
	"github.com/marten/simbridge/internal/domain/sensor"
	"github.com/marten/simbridge/internal/ports"
	"github.com/spf13/cobra"
)

var flagSimHz int

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a synthetic producer for testing the channel",
	Long: "Drives the producer side of the bridge without a simulation engine: " +
		"publishes a synthetic robot circling the origin, saves frames, mirrors an " +
		"occupancy grid, and reacts to mailbox commands. Ctrl-C to stop.",
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimHz, "hz", 20, "tick rate")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if flagSimHz < 1 {
		flagSimHz = 1
	}
	b := bridge.New(bridge.Config{
		DataDir:       a.Paths.Root,
		Throttle:      a.Cfg.Throttle,
		FrameCapacity: a.Cfg.FrameCapacity,
	})

	// Synthetic task state, resettable through the mailbox.
	var (
		simTime   float64
		collected int
		mode      = "search"
	)
	b.Register("reset_state", func(ports.Document) {
		collected = 0
		mode = "search"
		lg := b.Log()
		lg.Info().Msg("task state reset")
	})
	b.Detector = bridge.NewReloadDetector(func() {
		collected = 0
		mode = "search"
	})

	world := grid.New(9, 9, -4.5, -4.5, 1.0)
	for y := 0; y < world.Height(); y++ {
		for x := 0; x < world.Width(); x++ {
			world.Set(x, y, grid.CellFree)
		}
	}
	world.Set(4, 4, grid.CellObstacle)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tick := time.NewTicker(time.Second / time.Duration(flagSimHz))
	defer tick.Stop()

	fmt.Printf("Synthetic producer on %s at %d Hz. Ctrl-C to stop.\n", a.Paths.Root, flagSimHz)

	for n := 0; ; n++ {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}

		dt := 1.0 / float64(flagSimHz)
		simTime += dt
		b.Detector.Check(simTime)

		// Circle the origin; switch modes on a fixed cadence.
		theta := simTime / 4
		x, y := 3*math.Cos(theta), 3*math.Sin(theta)
		if n > 0 && n%(flagSimHz*10) == 0 {
			switch mode {
			case "search":
				mode = "approach"
			case "approach":
				mode = "deliver"
				collected++
			default:
				mode = "search"
			}
		}

		ranges := sensor.SummarizeRanges([]sensor.RangeReading{
			{Name: "front", Values: []float64{2.0 + math.Sin(simTime), 4.9}, MaxRange: 5.0},
		}, 0)

		b.Publish(ports.Document{
			"sim_time":  simTime,
			"mode":      mode,
			"pose":      []any{x, y, theta},
			"collected": collected,
			"sensors": map[string]any{
				"lidar": map[string]any{
					"front": map[string]any{"min": ranges.Devices["front"].Min},
				},
			},
		})
		b.PollCommand()

		if n%(flagSimHz*2) == 0 {
			b.SaveFrame(syntheticFrame(64, 48, n), 64, 48)
			if err := b.MirrorMap(grid.Render(world, x, y, 1)); err != nil {
				lg := b.Log()
				lg.Debug().Err(err).Msg("map mirror failed")
			}
		}
	}
}

// syntheticFrame builds a moving-gradient RGBA test pattern.
func syntheticFrame(w, h, n int) []byte {
	buf := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			buf[i] = byte((x * 4) + n)
			buf[i+1] = byte(y * 5)
			buf[i+2] = byte(n * 3)
			buf[i+3] = 0xFF
		}
	}
	return buf
}
