/*
Package bff writes path tables as FASTBuild configuration snippets.

A snippet starts with the #once directive, so including it several times
from a build graph is harmless, and continues with one variable
assignment per table entry in ascending key order:

	#once
	.VSBinPath_x64 = 'C:\VS\VC\Tools\MSVC\14.38.33130\bin\Hostx64\x64'

Values are emitted verbatim between single quotes. A value containing a
single quote produces a snippet FASTBuild cannot parse; toolchain.Validate
reports such values.
*/
package bff

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tmaxmax/bffgen/pkg/toolchain"
)

// Header is the first line of every snippet.
const Header = "#once"

// FileMode is the mode of written snippets.
const FileMode os.FileMode = 0o644

// Encode writes the snippet for t to w.
func Encode(w io.Writer, t *toolchain.PathTable) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return err
	}

	for key, path := range t.All() {
		if _, err := fmt.Fprintf(bw, ".%s = '%s'\n", key, path); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Marshal returns the snippet for t.
func Marshal(t *toolchain.PathTable) []byte {
	var buf bytes.Buffer
	_ = Encode(&buf, t) // bytes.Buffer never fails
	return buf.Bytes()
}

// WriteFile replaces dest with data. The data is written to a temporary
// file next to dest first and then renamed over it, so dest either keeps
// its old contents or gets all of the new ones.
func WriteFile(fsys afero.Fs, dest string, data []byte) (err error) {
	tmp, err := afero.TempFile(fsys, filepath.Dir(dest), "."+filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("bff: failed to create temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = fsys.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("bff: failed to write %s: %w", dest, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("bff: failed to write %s: %w", dest, err)
	}
	if err = fsys.Chmod(tmp.Name(), FileMode); err != nil {
		return fmt.Errorf("bff: failed to write %s: %w", dest, err)
	}
	if err = fsys.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("bff: failed to replace %s: %w", dest, err)
	}

	return nil
}
