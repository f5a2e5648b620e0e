package multipart

import (
	"bytes"
	"encoding/base64"
	"unicode/utf8"

	"github.com/indigo-web/formdata/config"
	"github.com/indigo-web/formdata/form"
	"github.com/indigo-web/utils/strcomp"
)

// unwrapBase64 replaces values with their decoded content in place, as some producers
// inline binary attachments as base64 text. Truncated values are left intact, as their
// content is incomplete anyway.
func unwrapBase64(policy config.Base64Policy, f form.Form) {
	for i := range f {
		if f[i].Truncated {
			continue
		}

		var multiline bool

		switch policy {
		case config.Base64Sniff:
		case config.Base64Explicit:
			if !strcomp.EqualFold(f[i].TransferEncoding, "base64") {
				continue
			}

			// RFC 2045 wraps encoded lines at 76 characters
			multiline = true
		default:
			return
		}

		if decoded, ok := decodeBase64(f[i].Value, multiline); ok {
			f[i].Value = decoded
		}
	}
}

// decodeBase64 decodes the whitespace-trimmed value if it's a valid UTF-8 string in the
// standard padded alphabet. A blank value decodes to an empty one. Line breaks inside
// the encoded data are rejected unless multiline is set.
func decodeBase64(value []byte, multiline bool) ([]byte, bool) {
	if !utf8.Valid(value) {
		return nil, false
	}

	trimmed := bytes.TrimSpace(value)
	if !multiline && bytes.ContainsAny(trimmed, "\r\n") {
		return nil, false
	}

	decoded := make([]byte, base64.StdEncoding.DecodedLen(len(trimmed)))
	n, err := base64.StdEncoding.Strict().Decode(decoded, trimmed)
	if err != nil {
		return nil, false
	}

	return decoded[:n], true
}
