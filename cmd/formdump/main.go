// Package main provides formdump, a tool to inspect and produce multipart/form-data
// bodies.
//
// Usage:
//
//	formdump parse [options] [file|-]
//	formdump encode [options]
//
// Exit codes:
//   - 0: success
//   - 1: malformed input or an invalid invocation
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Commit is set via ldflags at build time.
var commit = "unknown"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		os.Exit(report(os.Stderr, err))
	}
}

// report prints the failure and returns the process exit code. Errors made by cli.Exit
// carry their own code and may have no message, in which case the details were already
// logged.
func report(w io.Writer, err error) int {
	code := 1

	var coded cli.ExitCoder
	if errors.As(err, &coded) {
		code = coded.ExitCode()
		if msg := coded.Error(); len(msg) > 0 && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(w, msg)
		}

		return code
	}

	fmt.Fprintf(w, "formdump: %v\n", err)
	return code
}
