// Package body turns captured HTTP bodies into plain payloads ready for parsing.
package body

import (
	"errors"
	"fmt"
	"io"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/formdata/bytesize"
	"github.com/indigo-web/formdata/config"
)

var (
	ErrTooLarge          = errors.New("body: too large")
	ErrIncompleteChunked = errors.New("body: chunked body misses the terminating chunk")
)

// Read reads the whole stream, failing with ErrTooLarge if it exceeds the limit.
func Read(r io.Reader, limit bytesize.ByteSize) ([]byte, error) {
	if limit.IsUnlimited() {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, err
	}

	if !limit.Allows(len(data)) {
		return nil, ErrTooLarge
	}

	return data, nil
}

// Dechunk decodes a complete chunked transfer-coded body. Trailer fields aren't supported.
func Dechunk(data []byte) ([]byte, error) {
	parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())
	out := make([]byte, 0, len(data))

	for len(data) > 0 {
		chunk, extra, err := parser.Parse(data, false)
		out = append(out, chunk...)

		switch err {
		case nil:
		case io.EOF:
			return out, nil
		default:
			return nil, fmt.Errorf("body: bad chunked encoding: %w", err)
		}

		if len(chunk) == 0 && len(extra) == len(data) {
			break
		}

		data = extra
	}

	return nil, ErrIncompleteChunked
}

// Prepare reads the body and removes its transfer and content codings as configured.
func Prepare(cfg config.Body, r io.Reader) ([]byte, error) {
	data, err := Read(r, cfg.MaxSize)
	if err != nil {
		return nil, err
	}

	if cfg.Chunked {
		if data, err = Dechunk(data); err != nil {
			return nil, err
		}
	}

	return Decode(cfg.ContentEncoding, data, cfg.MaxDecodedSize)
}
