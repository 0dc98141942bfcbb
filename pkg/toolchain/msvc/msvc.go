/*
Package msvc provides a locator for the Microsoft Visual C++ toolset
and the Windows 10 SDK installed on the host system.

It registers the "msvc" locator. The installation is found with
vswhere, the toolset version is read from the marker file Visual Studio
installs next to the build tools, and the SDK version is the newest one
found under the SDK library root.
*/
package msvc

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/spf13/afero"
	"github.com/tmaxmax/bffgen/pkg/toolchain"
)

const (
	// Name is the name the locator is registered under.
	Name = "msvc"

	// DefaultComponent is the Visual Studio component that provides the x86/x64 build tools.
	DefaultComponent = "Microsoft.VisualStudio.Component.VC.Tools.x86.x64"
	// DefaultSDKRoot is where the Windows 10 SDK is installed by default.
	DefaultSDKRoot = `C:\Program Files (x86)\Windows Kits\10`
)

var (
	execCommandContext = exec.CommandContext
	lookPath           = exec.LookPath
)

func init() {
	toolchain.RegisterLocator(Name, func(opts *toolchain.LocateOptions) (toolchain.Locator, error) {
		return NewLocator(opts)
	})
}

// Locator finds a Visual Studio installation with the C++ build tools and
// the Windows SDK.
type Locator struct {
	fs        afero.Fs
	toolPath  string
	component string
	sdkRoot   string
	host      Arch
	target    Arch
}

var _ toolchain.Locator = (*Locator)(nil)

// NewLocator creates a locator from the given options, filling in the
// defaults for the zero fields. The options may be nil.
func NewLocator(opts *toolchain.LocateOptions) (*Locator, error) {
	if opts == nil {
		opts = &toolchain.LocateOptions{}
	}

	host, err := ParseArch(opts.HostArch)
	if err != nil {
		return nil, fmt.Errorf("msvc: host architecture: %w", err)
	}

	target, err := ParseArch(opts.TargetArch)
	if err != nil {
		return nil, fmt.Errorf("msvc: target architecture: %w", err)
	}

	l := &Locator{
		fs:        opts.FS(),
		toolPath:  opts.ToolPath,
		component: opts.Component,
		sdkRoot:   opts.SDKRoot,
		host:      host,
		target:    target,
	}
	if l.component == "" {
		l.component = DefaultComponent
	}
	if l.sdkRoot == "" {
		l.sdkRoot = DefaultSDKRoot
	}

	return l, nil
}

// Locate runs vswhere, reads the toolset version, composes the toolset
// paths and discovers the SDK layout, in this order. The first failing
// step aborts the whole lookup.
func (l *Locator) Locate(ctx context.Context) (*toolchain.PathTable, error) {
	root, err := LocateInstallationRoot(ctx, l.fs, l.toolPath, l.component)
	if err != nil {
		return nil, err
	}

	version, err := ResolveToolsetVersion(l.fs, root)
	if err != nil {
		return nil, err
	}

	table, err := ToolchainPaths(root, version, l.host, l.target)
	if err != nil {
		return nil, err
	}

	sdk, err := DiscoverSDKLayout(l.fs, l.sdkRoot, l.target)
	if err != nil {
		return nil, err
	}

	if err := table.Merge(sdk); err != nil {
		return nil, fmt.Errorf("msvc: %w", err)
	}

	return table, nil
}

func (l *Locator) Info() toolchain.LocatorInfo {
	tool := l.toolPath
	if tool == "" {
		tool = vswhereExecutable
	}

	return toolchain.LocatorInfo{
		Name:        Name,
		Description: fmt.Sprintf("Visual C++ build tools (Host%s, %s) and Windows SDK", l.host, l.target),
		Tool:        tool,
	}
}
