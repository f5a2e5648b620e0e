package strutil

import (
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}

// CutParams returns everything after the first semicolon, left-stripped.
func CutParams(header string) (params string) {
	_, params = CutHeader(header)
	return params
}

// CutHeader behaves like strings.Cut with a semicolon, but strips whitespaces between the
// value and the first parameter in addition.
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return header, ""
	}

	return header[:sep], LStripWS(header[sep+1:])
}

// Unquote removes exactly one pair of surrounding double quotes.
func Unquote(str string) string {
	if len(str) > 1 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}

	return str
}

// TrimQuotes removes all the leading and trailing double quotes.
func TrimQuotes(str string) string {
	return strings.Trim(str, `"`)
}

// CutPrefixFold is strings.CutPrefix, except the prefix is compared case-insensitively.
func CutPrefixFold(str, prefix string) (after string, found bool) {
	if len(str) < len(prefix) || !strcomp.EqualFold(str[:len(prefix)], prefix) {
		return str, false
	}

	return str[len(prefix):], true
}
