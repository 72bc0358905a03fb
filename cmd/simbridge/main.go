// simbridge is the tool-server side of the file-backed simulation bridge:
// it reads the status documents a simulation controller publishes into a
// shared data directory and writes commands back through the same channel.
package main

import (
	"os"

	"github.com/marten/simbridge/cmd/simbridge/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
