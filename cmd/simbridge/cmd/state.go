package cmd

import (
	"fmt"

	"github.com/marten/simbridge/internal/app"
	"github.com/spf13/cobra"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Dump the full status document as JSON",
	RunE:  runState,
}

func runState(cmd *cobra.Command, args []string) error {
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
		return noData("state")
	}

	fmt.Println(app.FormatFullState(doc, a.Cfg.CharacterLimit))
	return nil
}
