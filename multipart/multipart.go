package multipart

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"github.com/indigo-web/formdata/bytesize"
	"github.com/indigo-web/formdata/config"
	"github.com/indigo-web/formdata/form"
	"github.com/indigo-web/formdata/internal/lines"
	"github.com/indigo-web/formdata/internal/strutil"
	"github.com/indigo-web/utils/uf"
)

// ErrNoBoundary is returned if the body doesn't start with a boundary line. No partial
// result is returned in this case.
var ErrNoBoundary = errors.New("multipart: body doesn't start with a boundary line")

// Result is a successfully parsed multipart body.
type Result struct {
	// Boundary is the delimiter taken from the first line, without the leading dashes.
	Boundary string
	// Form holds all the named parts in order of their appearance.
	Form form.Form
}

type parserState uint8

const (
	eReadingHeaders parserState = iota
	eStartReadingValue
	eReadingValue
)

// Parse decodes a multipart/form-data body. The boundary is determined by the first
// line. At most maxValueSize bytes of each value are kept, use bytesize.Unlimited to
// disable the limit. Text values that are valid base64 are decoded.
//
// Malformed parts never cause an error: parts without a name are dropped, parts with
// no value have an empty one. The only error is ErrNoBoundary.
func Parse(data []byte, maxValueSize bytesize.ByteSize) (Result, error) {
	cfg := config.Default().Parser
	cfg.MaxValueSize = maxValueSize

	return ParseConfig(cfg, data)
}

// ParseConfig is like Parse, but takes the whole parser configuration.
func ParseConfig(cfg config.Parser, data []byte) (Result, error) {
	var (
		state     = eReadingHeaders
		delimiter []byte
		current   = newPart(cfg.MaxValueSize)
		into      = make(form.Form, 0, cfg.EntriesPrealloc)
	)

	for line := range lines.All(data) {
		if delimiter == nil {
			if !bytes.HasPrefix(line, dashes) || !utf8.Valid(line) {
				return Result{}, ErrNoBoundary
			}

			delimiter = line
			continue
		}

		if isDelimiter(line, delimiter) {
			into = current.Flush(into)
			current.Reset()
			state = eReadingHeaders
			continue
		}

		switch state {
		case eReadingHeaders:
			if len(line) == 0 {
				state = eStartReadingValue
				continue
			}

			current.Header(line)
		case eStartReadingValue:
			current.Append(line)
			state = eReadingValue
		case eReadingValue:
			current.Append(crlf)
			current.Append(line)
		}
	}

	if delimiter == nil {
		return Result{}, ErrNoBoundary
	}

	into = current.Flush(into)
	unwrapBase64(cfg.Base64, into)

	return Result{
		Boundary: string(delimiter[len(dashes):]),
		Form:     into,
	}, nil
}

var (
	dashes = []byte("--")
	crlf   = []byte("\r\n")
)

// isDelimiter reports whether the line is either a delimiter or the close-delimiter.
// Trailing whitespaces are permitted, as RFC 2046 allows transport padding.
func isDelimiter(line, delimiter []byte) bool {
	if !bytes.HasPrefix(line, delimiter) {
		return false
	}

	rest := strutil.RStripWS(uf.B2S(line[len(delimiter):]))
	return len(rest) == 0 || rest == "--"
}
