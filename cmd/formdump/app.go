package main

import (
	"github.com/urfave/cli/v2"
)

const (
	version     = "0.1.0"
	verboseFlag = "verbose"
)

func newApp() *cli.App {
	return &cli.App{
		Name:    "formdump",
		Usage:   "Inspect and produce multipart/form-data bodies",
		Version: version + " (commit: " + commit + ")",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  verboseFlag,
				Usage: "Enable debug logging",
			},
		},
		// values of --field may legitimately contain commas
		DisableSliceFlagSeparator: true,
		// exit codes are chosen by main, so the app stays embeddable in tests
		ExitErrHandler: func(*cli.Context, error) {},
		Commands: []*cli.Command{
			parseCommand(),
			encodeCommand(),
			versionCommand(),
		},
	}
}
