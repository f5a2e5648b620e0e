package config

import (
	"fmt"

	"github.com/indigo-web/formdata/bytesize"
)

// Base64Policy defines when form values must be base64-decoded.
type Base64Policy uint8

const (
	// Base64Sniff decodes every text value that happens to be valid base64. Be aware that
	// plain text fields might look like base64 as well, e.g. "test", and will be decoded.
	Base64Sniff Base64Policy = iota + 1
	// Base64Explicit decodes only values of parts with Content-Transfer-Encoding: base64.
	Base64Explicit
	// Base64Off disables decoding.
	Base64Off
)

var base64Policies = [...]string{
	Base64Sniff:    "sniff",
	Base64Explicit: "explicit",
	Base64Off:      "off",
}

func (b Base64Policy) String() string {
	if b == 0 || int(b) >= len(base64Policies) {
		return "unknown"
	}

	return base64Policies[b]
}

// ParseBase64Policy returns the policy by its name.
func ParseBase64Policy(name string) (Base64Policy, error) {
	for i, policy := range base64Policies {
		if i > 0 && policy == name {
			return Base64Policy(i), nil
		}
	}

	return 0, fmt.Errorf("config: unknown base64 policy: %q", name)
}

func (b Base64Policy) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *Base64Policy) UnmarshalText(text []byte) error {
	policy, err := ParseBase64Policy(string(text))
	if err != nil {
		return err
	}

	*b = policy
	return nil
}

type (
	Parser struct {
		// MaxValueSize limits how many bytes of a single field value are retained. The
		// rest is discarded, but the field is still present with its metadata.
		MaxValueSize bytesize.ByteSize `yaml:"max_value_size"`
		// Base64 selects when values are base64-decoded.
		Base64 Base64Policy `yaml:"base64"`
		// EntriesPrealloc is the number of preallocated seats for form.Form.
		EntriesPrealloc int `yaml:"entries_prealloc"`
	}

	Body struct {
		// MaxSize limits the raw input as it is read. Parsing is CPU-bound and proportional
		// to the input length, so this is what bounds its duration.
		MaxSize bytesize.ByteSize `yaml:"max_size"`
		// MaxDecodedSize limits the body after the content coding was removed.
		MaxDecodedSize bytesize.ByteSize `yaml:"max_decoded_size"`
		// ContentEncoding is the coding the input is compressed with. Empty stands for
		// identity.
		ContentEncoding string `yaml:"content_encoding" test:"nullable"`
		// Chunked tells whether the input is chunked transfer-coded.
		Chunked bool `yaml:"chunked" test:"nullable"`
	}

	Output struct {
		// Format is either "json" or "text".
		Format string `yaml:"format"`
		// Indent enables pretty-printing of JSON output.
		Indent bool `yaml:"indent" test:"nullable"`
		// TextPreview limits how many bytes of a value are shown by the text format.
		TextPreview bytesize.ByteSize `yaml:"text_preview"`
	}
)

// Config holds limits and switches of the parser and the surrounding tooling.
//
// You must ALWAYS start from Default() and modify the values you need, as the zero
// Config isn't usable.
type Config struct {
	Parser Parser `yaml:"parser"`
	Body   Body   `yaml:"body"`
	Output Output `yaml:"output"`
}

// Default returns the default config. The parser defaults keep values of any size.
func Default() *Config {
	return &Config{
		Parser: Parser{
			MaxValueSize:    bytesize.Unlimited,
			Base64:          Base64Sniff,
			EntriesPrealloc: 8,
		},
		Body: Body{
			MaxSize:        64 * bytesize.MiB,
			MaxDecodedSize: 512 * bytesize.MiB,
		},
		Output: Output{
			Format:      "json",
			TextPreview: 64 * bytesize.B,
		},
	}
}
