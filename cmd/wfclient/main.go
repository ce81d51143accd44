// Command wfclient drives a hosting provider's remote administration API
// from operator scripts and plans.
package main

import (
	"fmt"
	"os"

	"github.com/hostersuite/wfclient/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
