package multipart

import (
	"strings"
	"unicode/utf8"

	"github.com/indigo-web/formdata/bytesize"
	"github.com/indigo-web/formdata/form"
	"github.com/indigo-web/formdata/internal/strutil"
	"github.com/indigo-web/utils/uf"
)

const (
	contentDisposition      = "Content-Disposition: form-data;"
	contentType             = "Content-Type:"
	contentTransferEncoding = "Content-Transfer-Encoding:"
)

// part accumulates a single part between two delimiters.
type part struct {
	limit     bytesize.ByteSize
	name      string
	filename  string
	mime      string
	encoding  string
	value     []byte
	truncated bool
}

func newPart(limit bytesize.ByteSize) *part {
	return &part{limit: limit}
}

// Header consumes a single header line. Unknown headers and lines that aren't valid
// UTF-8 are ignored.
func (p *part) Header(line []byte) {
	if !utf8.Valid(line) {
		return
	}

	header := uf.B2S(line)

	if params, found := strutil.CutPrefixFold(header, contentDisposition); found {
		p.disposition(params)
		return
	}

	if value, found := strutil.CutPrefixFold(header, contentType); found {
		p.mime = strings.Clone(strutil.StripWS(value))
		return
	}

	if value, found := strutil.CutPrefixFold(header, contentTransferEncoding); found {
		p.encoding = strings.Clone(strutil.StripWS(value))
	}
}

func (p *part) disposition(params string) {
	for component := range strutil.Split(params, "; ") {
		if value, found := cutParam(component, "name="); found {
			p.name = strings.Clone(value)
		} else if value, found = cutParam(component, "filename="); found {
			p.filename = strings.Clone(value)
		}
	}
}

func cutParam(component, key string) (value string, found bool) {
	component = strutil.LStripWS(component)
	if len(component) < len(key) || component[:len(key)] != key {
		return "", false
	}

	return strutil.TrimQuotes(component[len(key):]), true
}

// Append adds a piece of value, discarding everything beyond the limit.
func (p *part) Append(piece []byte) {
	if p.truncated {
		return
	}

	allowed := piece
	if !p.limit.IsUnlimited() {
		room := int64(p.limit) - int64(len(p.value))
		if room < int64(len(piece)) {
			allowed = piece[:max(room, 0)]
			p.truncated = true
		}
	}

	p.value = append(p.value, allowed...)
}

// Flush appends the part to the form, if it has a name.
func (p *part) Flush(into form.Form) form.Form {
	if len(p.name) == 0 {
		return into
	}

	return append(into, form.Data{
		Name:             p.name,
		Filename:         p.filename,
		Type:             p.mime,
		TransferEncoding: p.encoding,
		Value:            p.value,
		Truncated:        p.truncated,
	})
}

// Reset prepares the part for the next one. The value buffer isn't reused, as it's
// owned by the flushed form.Data now.
func (p *part) Reset() {
	*p = part{limit: p.limit}
}
