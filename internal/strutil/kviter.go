package strutil

import (
	"iter"
	"strings"
)

// WalkKV iterates over semicolon-separated key=value parameters, as in
// `charset=utf-8; boundary="abc"`. Keys and values are whitespace-stripped and values
// unquoted. Keys without a value are yielded with an empty value, empty segments are
// skipped.
func WalkKV(data string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for segment := range Split(data, ";") {
			segment = StripWS(segment)
			if len(segment) == 0 {
				continue
			}

			key, value, _ := strings.Cut(segment, "=")
			if !yield(RStripWS(key), Unquote(LStripWS(value))) {
				return
			}
		}
	}
}

// Split iterates over substrings of data separated by sep. Unlike strings.Split,
// it doesn't allocate.
func Split(data, sep string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			i := strings.Index(data, sep)
			if i == -1 {
				yield(data)
				return
			}

			if !yield(data[:i]) {
				return
			}

			data = data[i+len(sep):]
		}
	}
}
