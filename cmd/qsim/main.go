// Command qsim runs, samples and benchmarks small quantum circuits.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/qsim/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
