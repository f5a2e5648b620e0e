package multipart

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/formdata/form"
)

var (
	ErrBadBoundary = errors.New("multipart: boundary must be 1-70 characters long and contain no whitespaces or CR/LF")
	ErrUnnamed     = errors.New("multipart: field has no name")
	ErrBadHeader   = errors.New("multipart: field metadata contains quotes or line breaks")
	// ErrAmbiguousValue is returned if the value contains the delimiter line, so the body
	// would be split at a wrong place.
	ErrAmbiguousValue = errors.New("multipart: value collides with the boundary")
)

const boundaryLength = 32

// NewBoundary returns a random boundary, similar to those generated by browsers.
func NewBoundary() string {
	return "----FormBoundary" + uniuri.NewLen(boundaryLength-len("----FormBoundary"))
}

// Encode writes the form as a multipart body delimited by the boundary. The output is
// parsed back by Parse into the same form, unless values are subject to base64
// decoding.
func Encode(w io.Writer, boundary string, f form.Form) error {
	if !validBoundary(boundary) {
		return ErrBadBoundary
	}

	delimiter := "--" + boundary

	for _, data := range f {
		if len(data.Name) == 0 {
			return ErrUnnamed
		}

		if !safeParam(data.Name) || !safeParam(data.Filename) ||
			!safeHeader(data.Type) || !safeHeader(data.TransferEncoding) {
			return ErrBadHeader
		}

		if collides(data.Value, delimiter) {
			return ErrAmbiguousValue
		}
	}

	buff := bufio.NewWriter(w)

	for _, data := range f {
		buff.WriteString(delimiter)
		buff.WriteString("\r\n")
		writeHeaders(buff, data)
		buff.WriteString("\r\n")
		buff.Write(data.Value)
		buff.WriteString("\r\n")
	}

	buff.WriteString(delimiter)
	buff.WriteString("--\r\n")

	return buff.Flush()
}

func writeHeaders(buff *bufio.Writer, data form.Data) {
	buff.WriteString(`Content-Disposition: form-data; name="`)
	buff.WriteString(data.Name)
	buff.WriteByte('"')

	if data.IsFile() {
		buff.WriteString(`; filename="`)
		buff.WriteString(data.Filename)
		buff.WriteByte('"')
	}

	buff.WriteString("\r\n")

	if len(data.Type) > 0 {
		buff.WriteString("Content-Type: ")
		buff.WriteString(data.Type)
		buff.WriteString("\r\n")
	}

	if len(data.TransferEncoding) > 0 {
		buff.WriteString("Content-Transfer-Encoding: ")
		buff.WriteString(data.TransferEncoding)
		buff.WriteString("\r\n")
	}
}

func validBoundary(boundary string) bool {
	return len(boundary) > 0 && len(boundary) <= 70 &&
		!strings.ContainsAny(boundary, " \t\r\n")
}

func safeHeader(value string) bool {
	return !strings.ContainsAny(value, "\r\n")
}

func safeParam(value string) bool {
	return safeHeader(value) && !strings.Contains(value, `"`) && !strings.Contains(value, "; ")
}

// collides reports whether a line of the value starts with the delimiter. Such lines
// are rejected even if the parser wouldn't match them.
func collides(value []byte, delimiter string) bool {
	return bytes.HasPrefix(value, []byte(delimiter)) ||
		bytes.Contains(value, []byte("\r\n"+delimiter))
}
