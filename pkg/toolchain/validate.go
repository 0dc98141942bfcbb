package toolchain

import (
	"iter"
	"strings"

	"github.com/spf13/afero"
)

// WarningKind tells what is wrong with a validated path.
type WarningKind int

const (
	// WarningMissing means the path does not exist on the file system.
	WarningMissing WarningKind = iota
	// WarningQuote means the path contains a single quote, which the
	// generated configuration format cannot represent.
	WarningQuote
)

// Warning reports a path table entry that looks wrong. Warnings never make
// a table unusable, they are meant to be shown to the user.
type Warning struct {
	Key  string
	Path string
	Kind WarningKind
}

func (w Warning) String() string {
	switch w.Kind {
	case WarningQuote:
		return w.Path + " contains a single quote"
	default:
		return w.Path + " doesn't exist"
	}
}

// Validate returns a sequence of warnings for the entries of t, in key order.
// The file system is checked lazily while ranging, and every range over the
// sequence checks it again.
func Validate(fsys afero.Fs, t *PathTable) iter.Seq[Warning] {
	return func(yield func(Warning) bool) {
		for key, path := range t.All() {
			if strings.ContainsRune(path, '\'') {
				if !yield(Warning{Key: key, Path: path, Kind: WarningQuote}) {
					return
				}
			}

			// Stat failures other than "not exist" are reported the same way:
			// the path could not be confirmed.
			if ok, err := afero.Exists(fsys, HostPath(path)); ok && err == nil {
				continue
			}

			if !yield(Warning{Key: key, Path: path, Kind: WarningMissing}) {
				return
			}
		}
	}
}
