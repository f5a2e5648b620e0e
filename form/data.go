package form

import (
	"github.com/indigo-web/formdata/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
	"github.com/indigo-web/utils/uf"
)

// Data is a single named part of a form.
type Data struct {
	// Name is the value of the name parameter of Content-Disposition. Never empty.
	Name string
	// Filename is the value of the filename parameter. Empty unless the part is a file
	// upload.
	Filename string
	// Type is the Content-Type header value including its parameters, whitespace-trimmed.
	Type string
	// TransferEncoding is the Content-Transfer-Encoding header value, if any.
	TransferEncoding string
	// Value holds the payload. It is possibly base64-decoded, depending on the parser
	// configuration.
	Value []byte
	// Truncated is set if Value was cut because it exceeded the maximal value size.
	Truncated bool
}

// Text returns the value as a string without copying. The string is valid as long as
// the Value isn't modified.
func (d Data) Text() string {
	return uf.B2S(d.Value)
}

// IsFile reports whether the part is a file upload.
func (d Data) IsFile() bool {
	return len(d.Filename) > 0
}

// MIME returns the Type without parameters.
func (d Data) MIME() string {
	mime, _ := strutil.CutHeader(d.Type)
	return strutil.RStripWS(mime)
}

// Charset returns the charset parameter of the Type, if presented.
func (d Data) Charset() string {
	return d.Param("charset")
}

// Param returns the value of a Type parameter. The key is compared case-insensitively.
func (d Data) Param(key string) string {
	for k, v := range strutil.WalkKV(strutil.CutParams(d.Type)) {
		if strcomp.EqualFold(k, key) {
			return v
		}
	}

	return ""
}
