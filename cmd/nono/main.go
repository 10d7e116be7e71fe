// Command nono runs DOM event robot scenarios and inspects recorded traces.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/nono/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
