package body

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/indigo-web/formdata/bytesize"
	"github.com/indigo-web/formdata/internal/strutil"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// maxCodings limits how many codings can be stacked in a single Content-Encoding.
const maxCodings = 4

var (
	ErrUnsupportedCoding = errors.New("body: content coding is not supported")
	ErrTooManyCodings    = errors.New("body: too many content codings")
)

// Decode removes the content coding, which is the Content-Encoding header value as is,
// e.g. "gzip" or "deflate, zstd". Codings are listed in order of application, therefore
// they are removed in reverse. The decoded body must not exceed the limit.
func Decode(coding string, data []byte, limit bytesize.ByteSize) ([]byte, error) {
	codings := strings.Split(coding, ",")
	if len(codings) > maxCodings {
		return nil, ErrTooManyCodings
	}

	for i := len(codings) - 1; i >= 0; i-- {
		var err error
		if data, err = decode(strings.ToLower(strutil.StripWS(codings[i])), data, limit); err != nil {
			return nil, err
		}
	}

	return data, nil
}

func decode(token string, data []byte, limit bytesize.ByteSize) ([]byte, error) {
	switch token {
	case "", "identity":
		if !limit.Allows(len(data)) {
			return nil, ErrTooLarge
		}

		return data, nil
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("body: gzip: %w", err)
		}

		defer r.Close()
		return readDecoded(r, limit)
	case "deflate":
		r := flate.NewReader(bytes.NewReader(data))
		defer r.Close()
		return readDecoded(r, limit)
	case "zstd":
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("body: zstd: %w", err)
		}

		defer r.Close()
		return readDecoded(r, limit)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCoding, token)
	}
}

func readDecoded(r io.Reader, limit bytesize.ByteSize) ([]byte, error) {
	data, err := Read(r, limit)
	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, ErrTooLarge):
		return nil, fmt.Errorf("%w: decoded body exceeds %s", ErrTooLarge, limit)
	default:
		return nil, fmt.Errorf("body: decode: %w", err)
	}
}
