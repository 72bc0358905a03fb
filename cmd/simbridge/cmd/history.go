package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagHistoryCount int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently archived status snapshots",
	Long:  "Every status read is archived locally; history lists the most recent snapshots, newest first, surviving producer restarts and reloads.",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryCount, "count", "n", 10, "number of snapshots")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	snaps, err := a.History(flagHistoryCount)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No archived snapshots yet.")
		return nil
	}

	for _, s := range snaps {
		mode, _ := s.Doc.Mode()
		if mode == "" {
			mode = "?"
		}
		line := fmt.Sprintf("%s  mode=%s", s.CapturedAt.Format("2006-01-02 15:04:05"), mode)
		if pose, ok := s.Doc.Pose(); ok {
			line += fmt.Sprintf("  pos=(%.2f, %.2f)", pose[0], pose[1])
		}
		if n, ok := s.Doc.Int("collected"); ok {
			line += fmt.Sprintf("  collected=%d", n)
		}
		fmt.Println(line)
	}
	return nil
}
