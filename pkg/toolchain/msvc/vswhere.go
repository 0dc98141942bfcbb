package msvc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/afero"
	"github.com/tmaxmax/bffgen/pkg/toolchain"
)

const (
	vswhereExecutable   = "vswhere.exe"
	vswhereInstallerDir = `Microsoft Visual Studio\Installer`
)

func vswhereArgs(component string) []string {
	return []string{"-latest", "-products", "*", "-requires", component, "-property", "installationPath"}
}

// findVSWhere resolves the vswhere executable: the explicit path if given,
// otherwise vswhere.exe from PATH, otherwise the copy the Visual Studio
// installer places under Program Files.
func findVSWhere(fsys afero.Fs, explicit string) (string, error) {
	if explicit != "" {
		path, err := lookPath(explicit)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", toolchain.ErrToolNotFound, explicit, err)
		}
		return path, nil
	}

	if path, err := lookPath(vswhereExecutable); err == nil {
		return path, nil
	}

	if programFiles := os.Getenv("ProgramFiles(x86)"); programFiles != "" {
		path := toolchain.HostPath(join(programFiles, vswhereInstallerDir, vswhereExecutable))
		if ok, _ := afero.Exists(fsys, path); ok {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w: %s is not on PATH", toolchain.ErrToolNotFound, vswhereExecutable)
}

// LocateInstallationRoot asks vswhere for the newest Visual Studio
// installation that provides the given component and returns its
// installation path. toolPath overrides the vswhere lookup when non-empty.
//
// It returns an error wrapping toolchain.ErrToolNotFound if vswhere is
// missing or finds nothing, and a *toolchain.CommandError if vswhere fails.
func LocateInstallationRoot(ctx context.Context, fsys afero.Fs, toolPath, component string) (string, error) {
	if component == "" {
		component = DefaultComponent
	}

	tool, err := findVSWhere(fsys, toolPath)
	if err != nil {
		return "", err
	}

	args := vswhereArgs(component)
	cmd := execCommandContext(ctx, tool, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", &toolchain.CommandError{
				Args:   append([]string{tool}, args...),
				Stderr: strings.TrimSpace(stderr.String()),
				Err:    err,
			}
		}

		return "", fmt.Errorf("%w: %s: %v", toolchain.ErrToolNotFound, tool, err)
	}

	root := firstLine(stdout)
	if root == "" {
		return "", fmt.Errorf("%w: %s found no installation providing %s", toolchain.ErrToolNotFound, tool, component)
	}
	if !toolchain.IsAbs(root) {
		return "", fmt.Errorf("%w: %s printed a relative installation path %q", toolchain.ErrToolNotFound, tool, root)
	}

	return root, nil
}

func firstLine(stdout []byte) string {
	stdout = bytes.TrimSpace(stdout)
	if end := bytes.IndexAny(stdout, "\r\n"); end != -1 {
		stdout = stdout[:end]
	}
	return string(bytes.TrimSpace(stdout))
}
