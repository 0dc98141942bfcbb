package toolchain

import (
	"os"
	"path/filepath"
	"strings"
)

func isValidImplementationName(name string) bool {
	return name != "" && !strings.ContainsAny(name, string([]rune{os.PathSeparator, os.PathListSeparator}))
}

// HostPath converts a path written with either '\' or '/' separators to the
// separator used by the host. Tables describe Windows paths, so this is how
// they are handed to the file system on any host.
func HostPath(path string) string {
	return filepath.FromSlash(strings.ReplaceAll(path, `\`, "/"))
}

// IsAbs reports whether path is absolute either on the host or in Windows
// syntax (drive-qualified or UNC), independently of the host OS.
func IsAbs(path string) bool {
	if filepath.IsAbs(path) {
		return true
	}

	if len(path) >= 3 && isDriveLetter(path[0]) && path[1] == ':' && isSeparator(path[2]) {
		return true
	}

	return len(path) > 2 && isSeparator(path[0]) && isSeparator(path[1]) && !isSeparator(path[2])
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isSeparator(c byte) bool {
	return c == '\\' || c == '/'
}
