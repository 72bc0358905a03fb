package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagLogLines  int
	flagLogFilter string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show recent controller log lines",
	RunE:  runLogs,
}

func init() {
	logsCmd.Flags().IntVarP(&flagLogLines, "lines", "n", 50, "number of log lines")
	logsCmd.Flags().StringVarP(&flagLogFilter, "filter", "f", "", "only lines containing this text")
}

func runLogs(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	lines, err := a.TailLog(flagLogLines, flagLogFilter)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Println("No matching log entries.")
		return nil
	}

	for _, line := range lines {
		fmt.Println(line)
	}
	return nil
}
