package main

import (
	"errors"
	"fmt"
	"os"

	"bibvals/src/cmd/bibvals/uniqvalscmd"
)

var rootCmd = uniqvalscmd.New(uniqvalscmd.DefaultParsers())

func execute() error {
	return rootCmd.Execute()
}

// exitCode maps usage errors to 2 and everything else to 1.
func exitCode(err error) int {
	var ue *uniqvalscmd.UsageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		code := exitCode(err)
		if code == 2 {
			_, _ = fmt.Fprint(os.Stderr, rootCmd.UsageString())
		}
		os.Exit(code)
	}
}
