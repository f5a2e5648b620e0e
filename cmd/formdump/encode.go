package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/indigo-web/formdata/form"
	"github.com/indigo-web/formdata/multipart"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "encode",
		Usage: "Write a multipart/form-data body to stdout",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "field",
				Usage: "Text field in a form of name=value, may be repeated",
			},
			&cli.StringSliceFlag{
				Name:  "file",
				Usage: "File field in a form of name=path, may be repeated",
			},
			&cli.StringFlag{
				Name:  "boundary",
				Usage: "Boundary to use instead of a random one",
			},
		},
		Action: encodeAction,
	}
}

func encodeAction(c *cli.Context) error {
	logger := loggerFrom(c)
	defer func() { _ = logger.Sync() }()

	f, err := collectForm(c.StringSlice("field"), c.StringSlice("file"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	boundary := c.String("boundary")
	if len(boundary) == 0 {
		boundary = multipart.NewBoundary()
	}

	if err = multipart.Encode(c.App.Writer, boundary, f); err != nil {
		logger.Error("cannot encode the form", zap.Error(err))
		return cli.Exit("", 1)
	}

	logger.Info("encoded form",
		zap.String("boundary", boundary),
		zap.String("content_type", "multipart/form-data; boundary="+boundary),
		zap.Int("fields", len(f)),
	)

	return nil
}

// collectForm builds the form of text fields first and files afterward, each group in
// order of the flags.
func collectForm(fields, files []string) (form.Form, error) {
	f := make(form.Form, 0, len(fields)+len(files))

	for _, field := range fields {
		name, value, found := strings.Cut(field, "=")
		if !found {
			return nil, fmt.Errorf("bad --field %q: want name=value", field)
		}

		f = append(f, form.Data{Name: name, Value: []byte(value)})
	}

	for _, file := range files {
		name, path, found := strings.Cut(file, "=")
		if !found {
			return nil, fmt.Errorf("bad --file %q: want name=path", file)
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		f = append(f, form.Data{
			Name:     name,
			Filename: filepath.Base(path),
			Type:     typeByExtension(path),
			Value:    content,
		})
	}

	return f, nil
}

func typeByExtension(path string) string {
	if typ := mime.TypeByExtension(filepath.Ext(path)); len(typ) > 0 {
		return typ
	}

	return "application/octet-stream"
}
