package msvc

import (
	"fmt"
	"strings"
)

// Arch is an architecture name as used in the Visual C++ and Windows SDK directory layouts.
type Arch string

const (
	ArchX64   Arch = "x64"
	ArchX86   Arch = "x86"
	ArchARM64 Arch = "arm64"
	ArchARM   Arch = "arm"
)

var archAliases = map[string]Arch{
	"":      ArchX64,
	"x64":   ArchX64,
	"amd64": ArchX64,
	"x86":   ArchX86,
	"386":   ArchX86,
	"i386":  ArchX86,
	"arm64": ArchARM64,
	"arm":   ArchARM,
}

// ParseArch parses an architecture name, accepting the Go names as aliases.
// An empty name means x64.
func ParseArch(name string) (Arch, error) {
	arch, ok := archAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", fmt.Errorf("unknown architecture %q", name)
	}
	return arch, nil
}
