package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/marten/simbridge/internal/ports"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <action> [key=value ...]",
	Short: "Send a raw command to the controller",
	Long:  "Writes an arbitrary action with key=value parameters into the mailbox, for controllers with custom registered handlers.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSend,
}

func runSend(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	params := ports.Document{}
	for _, kv := range args[1:] {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return fmt.Errorf("bad parameter %q, want key=value", kv)
		}
		params[k] = v
	}

	id, err := a.Sender.Send(args[0], params)
	if err != nil {
		return err
	}
	fmt.Printf("Command %q sent (id %s).\n", args[0], id)
	return nil
}

var simCmd = &cobra.Command{
	Use:       "sim <pause|resume|fast_forward|reset|reload|step>",
	Short:     "Send a simulation control command",
	Long:      "Writes an engine-control command into the mailbox. The controller claims it on its next tick; without supervisor capability it logs a warning and does nothing.",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"pause", "resume", "fast_forward", "reset", "reload", "step"},
	RunE:      runSim,
}

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Request a simulation screenshot",
	RunE:  runScreenshot,
}

var resetStateCmd = &cobra.Command{
	Use:   "reset-state",
	Short: "Ask the controller to reset its task state",
	Long:  "Sends a reset_state command. Only controllers that registered a handler for it react; useful after a world reload left the controller with stale task state.",
	RunE:  runResetState,
}

func runSim(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.Sender.SimulationControl(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Command %q sent (id %s).\n", args[0], id)
	return nil
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	name, err := a.Sender.RequestScreenshot()
	if err != nil {
		return err
	}
	fmt.Printf("Screenshot requested: %s\n", filepath.Join(a.Paths.ScreenshotsDir, name+".png"))
	fmt.Println("Allow a few seconds for the controller to claim the command.")
	return nil
}

func runResetState(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	id, err := a.Sender.ResetState()
	if err != nil {
		return err
	}
	fmt.Printf("Controller state reset requested (id %s).\n", id)
	return nil
}
