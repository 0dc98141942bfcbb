package toolchain

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/afero"
)

// A Locator finds a toolchain installation on the host and describes it
// as a PathTable.
type Locator interface {
	// Locate queries the host and returns the complete table of paths for
	// the toolchain. No partial table is returned: on error the table is nil.
	Locate(ctx context.Context) (*PathTable, error)
	// Info returns some information about the locator.
	Info() LocatorInfo
}

// LocatorInfo holds some information about the underlying locator.
type LocatorInfo struct {
	// Name the locator is registered under.
	Name string
	// Description is a short human readable summary of what is located.
	Description string
	// Tool is the name or path of the external query tool the locator runs, if any.
	Tool string
}

// LocateOptions customizes the discovery process in a vendor-agnostic way.
// Zero fields fall back to the defaults of each locator.
type LocateOptions struct {
	// Fs is the file system used for every read. Defaults to the OS file system.
	Fs afero.Fs
	// ToolPath is the path of the external query tool. If empty, the locator
	// looks it up by itself.
	ToolPath string
	// Component is the component identifier the installation must provide.
	Component string
	// SDKRoot is the base directory of the platform SDK.
	SDKRoot string
	// HostArch is the architecture of the machine running the build.
	HostArch string
	// TargetArch is the architecture the build produces binaries for.
	TargetArch string
}

// FS returns the configured file system or the OS file system.
func (o *LocateOptions) FS() afero.Fs {
	if o == nil || o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

// NewLocator initializes the locator registered under the given name.
// The options may be nil.
func NewLocator(name string, opts *LocateOptions) (Locator, error) {
	locatorsMutex.RLock()
	constructor := locators[name]
	locatorsMutex.RUnlock()

	if constructor == nil {
		return nil, fmt.Errorf("toolchain: missing locator %q, forgotten import?", name)
	}

	if opts == nil {
		opts = &LocateOptions{}
	}

	locator, err := constructor(opts)
	if err != nil {
		return nil, fmt.Errorf("toolchain: failed to initialize locator %q: %w", name, err)
	}

	return locator, nil
}

// Locators returns the names of all registered locators, in registration order.
func Locators() []string {
	locatorsMutex.RLock()
	defer locatorsMutex.RUnlock()

	return append([]string(nil), locatorsNames...)
}

// LocatorConstructor is a function that constructs a Locator from the given options.
// The options are never nil.
type LocatorConstructor func(opts *LocateOptions) (Locator, error)

var (
	locators      = map[string]LocatorConstructor{}
	locatorsNames []string // provide ordered iteration for the map
	locatorsMutex sync.RWMutex
)

// RegisterLocator adds a custom Locator implementation for usage.
// If an implementation with the same name already exists or the provided
// constructor is nil, this function panics. If the name is empty or has path
// separators or path list separators, this function panics.
func RegisterLocator(name string, constructor LocatorConstructor) {
	locatorsMutex.Lock()
	defer locatorsMutex.Unlock()

	if !isValidImplementationName(name) {
		panic(fmt.Sprintf("toolchain: locator name %q has invalid characters", name))
	}

	if locators[name] != nil {
		panic(fmt.Sprintf("toolchain: locator %q is already registered", name))
	}

	if constructor == nil {
		panic(fmt.Sprintf("toolchain: constructor provided for locator %q is nil", name))
	}

	locators[name] = constructor
	locatorsNames = append(locatorsNames, name)
}
