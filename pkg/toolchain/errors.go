package toolchain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrToolNotFound is returned when an external query tool is missing
	// or does not print a usable result.
	ErrToolNotFound = errors.New("toolchain: external tool not found")
	// ErrConfigFileMissing is returned when a file or directory that the
	// toolchain layout requires is absent.
	ErrConfigFileMissing = errors.New("toolchain: required file missing")
	// ErrDuplicateKey is returned when a key is set twice on a PathTable.
	ErrDuplicateKey = errors.New("toolchain: duplicate path table key")
	// ErrInvalidKey is returned for keys that are not valid identifiers.
	ErrInvalidKey = errors.New("toolchain: invalid path table key")
	// ErrRelativePath is returned when a PathTable value is not absolute.
	ErrRelativePath = errors.New("toolchain: path is not absolute")
)

// CommandError is returned when an external tool exits unsuccessfully.
type CommandError struct {
	// Args is the argument vector the tool was started with, Args[0] being the tool itself.
	Args []string
	// Stderr is whatever the tool wrote to its standard error, trimmed.
	Stderr string
	// Err is the underlying error, usually an *exec.ExitError.
	Err error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("toolchain: '%s' failed: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
