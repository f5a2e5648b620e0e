package form

import (
	"iter"

	"github.com/indigo-web/utils/uf"
)

// Form is an ordered set of fields as they appeared in the body. Duplicate names are
// kept as is.
type Form []Data

// Name returns the first field with the name.
func (f Form) Name(name string) (Data, bool) {
	return first(f.Names(name))
}

// Names iterates over all fields with the name.
func (f Form) Names(name string) iter.Seq[Data] {
	return f.where(func(d Data) bool { return d.Name == name })
}

// File returns the first field with the filename. An empty filename matches fields
// that aren't uploads.
func (f Form) File(filename string) (Data, bool) {
	return first(f.Files(filename))
}

// Files iterates over all fields with the filename.
func (f Form) Files(filename string) iter.Seq[Data] {
	return f.where(func(d Data) bool { return d.Filename == filename })
}

// Uploads iterates over all file uploads.
func (f Form) Uploads() iter.Seq[Data] {
	return f.where(Data.IsFile)
}

// Value returns the text value of the first field with the name, or an empty string
// if there's none.
func (f Form) Value(name string) string {
	data, _ := f.Name(name)
	return uf.B2S(data.Value)
}

func (f Form) where(match func(Data) bool) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, data := range f {
			if match(data) && !yield(data) {
				return
			}
		}
	}
}

func first(seq iter.Seq[Data]) (Data, bool) {
	for data := range seq {
		return data, true
	}

	return Data{}, false
}
