// Package lines splits multipart bodies into logical lines.
//
// A logical line is terminated by CRLF only. A bare LF is considered a part of the
// payload, so the line continues past it and the LF is kept as is.
package lines

import (
	"bytes"
	"iter"
)

// All iterates over logical lines of data. Yielded lines alias data. A trailing run
// without CRLF is always yielded as the last line, meaning that data ending in CRLF
// yields an empty last line.
func All(data []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		var (
			offset  int
			pending = -1
		)

		for {
			lf := bytes.IndexByte(data[offset:], '\n')
			if lf == -1 {
				break
			}

			end := offset + lf
			if end > offset && data[end-1] == '\r' {
				start := offset
				if pending != -1 {
					start, pending = pending, -1
				}

				if !yield(data[start : end-1]) {
					return
				}
			} else if pending == -1 {
				pending = offset
			}

			offset = end + 1
		}

		// the tail after the last LF is treated as a segment that has no LF to
		// continue past.
		if tail := data[offset:]; len(tail) > 0 && tail[len(tail)-1] == '\r' {
			if pending == -1 {
				pending = offset
			}

			yield(data[pending : len(data)-1])
			return
		}

		if pending == -1 {
			pending = offset
		}

		yield(data[pending:])
	}
}

// Split returns all logical lines at once.
func Split(data []byte) (lines [][]byte) {
	for line := range All(data) {
		lines = append(lines, line)
	}

	return lines
}
