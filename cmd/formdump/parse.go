package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/indigo-web/formdata/body"
	"github.com/indigo-web/formdata/bytesize"
	"github.com/indigo-web/formdata/config"
	"github.com/indigo-web/formdata/internal/render"
	"github.com/indigo-web/formdata/multipart"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a multipart/form-data body and print its fields",
		ArgsUsage: "[file|-]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.GenericFlag{
				Name:  "max-value-size",
				Usage: "Maximal number of retained bytes per value, e.g. 10MiB or unlimited",
				Value: new(bytesize.ByteSize),
			},
			&cli.StringFlag{
				Name:  "base64",
				Usage: "When to decode base64 values: sniff, explicit, off",
			},
			&cli.BoolFlag{
				Name:  "chunked",
				Usage: "Input is chunked transfer-coded",
			},
			&cli.StringFlag{
				Name:  "content-encoding",
				Usage: "Content codings the input is compressed with, e.g. gzip",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: json, text",
			},
			&cli.BoolFlag{
				Name:  "indent",
				Usage: "Pretty-print JSON output",
			},
		},
		Action: parseAction,
	}
}

func parseAction(c *cli.Context) error {
	if c.NArg() > 1 {
		return cli.Exit("parse takes at most one file", 1)
	}

	cfg, err := parseConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	logger := loggerFrom(c)
	defer func() { _ = logger.Sync() }()

	input, closeInput, err := openInput(c)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	defer closeInput()

	data, err := body.Prepare(cfg.Body, input)
	if err != nil {
		logger.Error("cannot read the body", zap.Error(err))
		return cli.Exit("", 1)
	}

	start := time.Now()
	result, err := multipart.ParseConfig(cfg.Parser, data)
	if err != nil {
		logger.Error("malformed body", zap.Error(err), zap.Int("size", len(data)))
		return cli.Exit("", 1)
	}

	logger.Debug("parsed body",
		zap.String("boundary", result.Boundary),
		zap.Int("fields", len(result.Form)),
		zap.Stringer("size", bytesize.ByteSize(len(data))),
		zap.Duration("took", time.Since(start)),
	)

	for _, field := range result.Form {
		if field.Truncated {
			logger.Warn("value was truncated",
				zap.String("name", field.Name),
				zap.Stringer("limit", cfg.Parser.MaxValueSize),
			)
		}
	}

	return render.Render(c.App.Writer, cfg.Output, result)
}

// parseConfig loads the config file, if any, and applies the flags on top of it.
func parseConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := c.String("config"); len(path) > 0 {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if c.IsSet("max-value-size") {
		cfg.Parser.MaxValueSize = *c.Generic("max-value-size").(*bytesize.ByteSize)
	}

	if c.IsSet("base64") {
		policy, err := config.ParseBase64Policy(c.String("base64"))
		if err != nil {
			return nil, err
		}

		cfg.Parser.Base64 = policy
	}

	if c.IsSet("chunked") {
		cfg.Body.Chunked = c.Bool("chunked")
	}

	if c.IsSet("content-encoding") {
		cfg.Body.ContentEncoding = c.String("content-encoding")
	}

	if c.IsSet("format") {
		cfg.Output.Format = c.String("format")
	}

	if c.IsSet("indent") {
		cfg.Output.Indent = c.Bool("indent")
	}

	return cfg, cfg.Validate()
}

func openInput(c *cli.Context) (io.Reader, func(), error) {
	path := c.Args().First()
	if len(path) == 0 || path == "-" {
		return c.App.Reader, func() {}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("no such file: %s", path)
		}

		return nil, nil, err
	}

	return file, func() { _ = file.Close() }, nil
}
