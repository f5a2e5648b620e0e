// Package render prints parsed forms in a machine-readable (json) or a human-readable
// (text) format.
package render

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/indigo-web/formdata/bytesize"
	"github.com/indigo-web/formdata/config"
	"github.com/indigo-web/formdata/multipart"
	json "github.com/json-iterator/go"
)

type (
	// Document is the JSON representation of a parsed body.
	Document struct {
		Boundary string  `json:"boundary"`
		Fields   []Field `json:"fields"`
	}

	// Field carries the value either as Text, if it is valid UTF-8, or as Base64.
	Field struct {
		Name        string  `json:"name"`
		Filename    *string `json:"filename"`
		ContentType *string `json:"content_type"`
		Truncated   bool    `json:"truncated"`
		Size        int     `json:"size"`
		Text        *string `json:"text,omitempty"`
		Base64      *string `json:"base64,omitempty"`
	}
)

// NewDocument converts the result into its JSON representation.
func NewDocument(result multipart.Result) Document {
	doc := Document{
		Boundary: result.Boundary,
		Fields:   make([]Field, 0, len(result.Form)),
	}

	for _, data := range result.Form {
		field := Field{
			Name:        data.Name,
			Filename:    nullable(data.Filename),
			ContentType: nullable(data.Type),
			Truncated:   data.Truncated,
			Size:        len(data.Value),
		}

		if utf8.Valid(data.Value) {
			text := string(data.Value)
			field.Text = &text
		} else {
			encoded := base64.StdEncoding.EncodeToString(data.Value)
			field.Base64 = &encoded
		}

		doc.Fields = append(doc.Fields, field)
	}

	return doc
}

func nullable(str string) *string {
	if len(str) == 0 {
		return nil
	}

	return &str
}

// Render writes the result in the format the config selects.
func Render(w io.Writer, cfg config.Output, result multipart.Result) error {
	switch cfg.Format {
	case "json":
		return JSON(w, cfg.Indent, result)
	case "text":
		return Text(w, cfg.TextPreview, result)
	default:
		return fmt.Errorf("%w: %q", config.ErrBadFormat, cfg.Format)
	}
}

// JSON writes the result as a single JSON document followed by a newline.
func JSON(w io.Writer, indent bool, result multipart.Result) error {
	enc := json.ConfigCompatibleWithStandardLibrary.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}

	return enc.Encode(NewDocument(result))
}

// Text writes every field on its own line, followed by a quoted preview of at most
// preview bytes of its value.
func Text(w io.Writer, preview bytesize.ByteSize, result multipart.Result) error {
	buff := bufio.NewWriter(w)
	fmt.Fprintf(buff, "boundary: %s\n", result.Boundary)
	fmt.Fprintf(buff, "fields: %d\n", len(result.Form))

	for i, data := range result.Form {
		fmt.Fprintf(buff, "[%d] name=%q", i, data.Name)
		if data.IsFile() {
			fmt.Fprintf(buff, " filename=%q", data.Filename)
		}

		if len(data.Type) > 0 {
			fmt.Fprintf(buff, " type=%q", data.Type)
		}

		fmt.Fprintf(buff, " size=%s", bytesize.ByteSize(len(data.Value)))
		if data.Truncated {
			buff.WriteString(" (truncated)")
		}

		buff.WriteString("\n    ")
		buff.WriteString(previewOf(data.Value, preview))
		buff.WriteByte('\n')
	}

	return buff.Flush()
}

func previewOf(value []byte, limit bytesize.ByteSize) string {
	if !utf8.Valid(value) {
		return fmt.Sprintf("<binary, %d bytes>", len(value))
	}

	n := max(limit.Min(len(value)), 0)
	for n > 0 && n < len(value) && !utf8.RuneStart(value[n]) {
		n--
	}

	quoted := strconv.Quote(string(value[:n]))
	if n < len(value) {
		quoted += "..."
	}

	return quoted
}
