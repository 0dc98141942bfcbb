package msvc

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"github.com/hashicorp/go-version"
	"github.com/spf13/afero"
	"github.com/tmaxmax/bffgen/pkg/toolchain"
)

const versionMarker = `VC\Auxiliary\Build\Microsoft.VCToolsVersion.default.txt`

// ResolveToolsetVersion reads the default build tools version of the
// installation at root.
func ResolveToolsetVersion(fsys afero.Fs, root string) (string, error) {
	path := join(root, versionMarker)

	data, err := afero.ReadFile(fsys, toolchain.HostPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", toolchain.ErrConfigFileMissing, path)
	}
	if err != nil {
		return "", fmt.Errorf("msvc: failed to read toolset version: %w", err)
	}

	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", fmt.Errorf("%w: %s is empty", toolchain.ErrConfigFileMissing, path)
	}

	return v, nil
}

type entry struct {
	key  string
	path string
}

func newTable(entries []entry) (*toolchain.PathTable, error) {
	table := toolchain.NewPathTable()
	for _, e := range entries {
		if err := table.Set(e.key, e.path); err != nil {
			return nil, fmt.Errorf("msvc: %w", err)
		}
	}
	return table, nil
}

// ToolchainPaths composes the installation path and the binary, library and
// include directories of the given toolset version. It does not touch the
// file system.
func ToolchainPaths(root, toolsetVersion string, host, target Arch) (*toolchain.PathTable, error) {
	tools := join(root, `VC\Tools\MSVC`, toolsetVersion)

	return newTable([]entry{
		{"VSInstallPath", root},
		{"VSBinPath_" + string(target), join(tools, "bin", "Host"+string(host), string(target))},
		{"VSLibPath_" + string(target), join(tools, "lib", string(target))},
		{"VSIncludePath", join(tools, "include")},
	})
}

// DiscoverSDKLayout picks the newest SDK version installed under base and
// composes its platform and C runtime library and include directories.
func DiscoverSDKLayout(fsys afero.Fs, base string, target Arch) (*toolchain.PathTable, error) {
	libRoot := join(base, "Lib")

	infos, err := afero.ReadDir(fsys, toolchain.HostPath(libRoot))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", toolchain.ErrConfigFileMissing, libRoot)
	}
	if err != nil {
		return nil, fmt.Errorf("msvc: failed to list SDK versions: %w", err)
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() {
			names = append(names, info.Name())
		}
	}

	sdkVersion, ok := SelectSDKVersion(names)
	if !ok {
		return nil, fmt.Errorf("%w: no SDK versions under %s", toolchain.ErrConfigFileMissing, libRoot)
	}

	lib := join(base, "Lib", sdkVersion)
	include := join(base, "Include", sdkVersion)

	return newTable([]entry{
		{"WindowsSDKBasePath", base},
		{"WindowsSDKLibPath_" + string(target), join(lib, "um", string(target))},
		{"WindowsSDKIncludePath", join(include, "um")},
		{"WindowsSDKUcrtLibPath_" + string(target), join(lib, "ucrt", string(target))},
		{"WindowsSDKUcrtIncludePath", join(include, "ucrt")},
	})
}

// SelectSDKVersion returns the highest version among names. Names that are
// not versions are ignored, unless no name is a version: then the greatest
// name in byte order is returned. It reports false only for an empty list.
func SelectSDKVersion(names []string) (string, bool) {
	if len(names) == 0 {
		return "", false
	}

	var (
		best        string
		bestVersion *version.Version
	)

	for _, name := range names {
		v, err := version.NewVersion(name)
		if err != nil {
			continue
		}

		if bestVersion == nil || v.GreaterThan(bestVersion) {
			best, bestVersion = name, v
		}
	}

	if bestVersion != nil {
		return best, true
	}

	return slices.Max(names), true
}
