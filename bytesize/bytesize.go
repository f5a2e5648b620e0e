// Package bytesize provides the ByteSize type used to express memory limits, e.g. the
// maximal size of a single form value.
package bytesize

import (
	"errors"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// ByteSize represents a size in bytes.
type ByteSize int64

const (
	Zero ByteSize = 0
	B    ByteSize = 1
	KiB           = 1024 * B
	MiB           = 1024 * KiB
	GiB           = 1024 * MiB

	// Unlimited disables any limitations.
	Unlimited ByteSize = math.MaxInt64
)

const unlimitedToken = "unlimited"

var (
	ErrEmpty      = errors.New("bytesize: empty size")
	ErrOutOfRange = errors.New("bytesize: size is out of range")
)

// Bytes returns the number of bytes.
func (b ByteSize) Bytes() int64 {
	return int64(b)
}

// KiBs returns the number of whole kibibytes.
func (b ByteSize) KiBs() int64 {
	return int64(b / KiB)
}

// MiBs returns the number of whole mebibytes.
func (b ByteSize) MiBs() int64 {
	return int64(b / MiB)
}

// GiBs returns the number of whole gibibytes.
func (b ByteSize) GiBs() int64 {
	return int64(b / GiB)
}

// IsUnlimited reports whether the size disables the limit.
func (b ByteSize) IsUnlimited() bool {
	return b == Unlimited
}

// Allows reports whether n bytes fit into the size.
func (b ByteSize) Allows(n int) bool {
	return b == Unlimited || int64(n) <= int64(b)
}

// Min returns the smaller of the size and n.
func (b ByteSize) Min(n int) int {
	if b.Allows(n) {
		return n
	}

	return int(b)
}

// String returns a human-readable representation, e.g. "1.5 MiB".
func (b ByteSize) String() string {
	switch {
	case b == Unlimited:
		return unlimitedToken
	case b < 0:
		return "-" + humanize.IBytes(uint64(-b))
	default:
		return humanize.IBytes(uint64(b))
	}
}

// Parse parses humanized sizes like "42", "10 MiB", "1.5GB" or "unlimited". SI suffixes
// (kB, MB, GB) are decimal, IEC suffixes (KiB, MiB, GiB) are binary.
func Parse(str string) (ByteSize, error) {
	str = strings.TrimSpace(str)
	if len(str) == 0 {
		return 0, ErrEmpty
	}

	if strings.EqualFold(str, unlimitedToken) {
		return Unlimited, nil
	}

	n, err := humanize.ParseBytes(str)
	if err != nil {
		return 0, err
	}

	if n > math.MaxInt64 {
		return 0, ErrOutOfRange
	}

	return ByteSize(n), nil
}

// MustParse is like Parse, but panics on error.
func MustParse(str string) ByteSize {
	size, err := Parse(str)
	if err != nil {
		panic(err)
	}

	return size
}

// Set implements flag.Value, so the size can be used directly as a CLI flag.
func (b *ByteSize) Set(str string) error {
	size, err := Parse(str)
	if err != nil {
		return err
	}

	*b = size
	return nil
}

func (b ByteSize) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (b *ByteSize) UnmarshalText(text []byte) error {
	return b.Set(string(text))
}
