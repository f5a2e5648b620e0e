package main

import (
	json "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

// VersionResponse is the output of the version command.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Show version information",
		Action: func(c *cli.Context) error {
			return json.NewEncoder(c.App.Writer).Encode(VersionResponse{
				Version: version,
				Commit:  commit,
			})
		},
	}
}
