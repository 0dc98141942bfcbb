// Package generate runs a locator and turns its path table into a
// configuration snippet on disk.
package generate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/docker/go-units"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/tmaxmax/bffgen/pkg/bff"
	"github.com/tmaxmax/bffgen/pkg/toolchain"
)

// ErrStale is returned in check mode when the output on disk differs from
// what would be generated.
var ErrStale = errors.New("generate: output is out of date")

type Options struct {
	// Locator is the registered name of the locator to run.
	Locator string
	// Locate is passed to the locator. Its Fs defaults to Fs.
	Locate toolchain.LocateOptions
	// Output is the snippet destination.
	Output string
	// Check compares the destination with the generated snippet instead of writing it.
	Check bool
	// Fs defaults to the OS file system.
	Fs     afero.Fs
	Logger zerolog.Logger
}

type Result struct {
	Table    *toolchain.PathTable
	Warnings []toolchain.Warning
	Output   []byte
	// Diff is set in check mode when the destination is out of date.
	Diff    string
	Written bool
}

// Run locates the toolchain and writes the snippet. Nothing is written
// unless the complete table was located.
func Run(ctx context.Context, opts Options) (*Result, error) {
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	locateOpts := opts.Locate
	if locateOpts.Fs == nil {
		locateOpts.Fs = fsys
	}

	log := opts.Logger

	locator, err := toolchain.NewLocator(opts.Locator, &locateOpts)
	if err != nil {
		return nil, err
	}

	info := locator.Info()
	log.Debug().Str("locator", info.Name).Str("tool", info.Tool).Msg(info.Description)

	table, err := locator.Locate(ctx)
	if err != nil {
		return nil, err
	}

	res := &Result{Table: table}

	for w := range toolchain.Validate(locateOpts.Fs, table) {
		log.Warn().Str("key", w.Key).Msg(w.String())
		res.Warnings = append(res.Warnings, w)
	}

	res.Output = bff.Marshal(table)

	if opts.Check {
		return res, check(fsys, opts.Output, res, log)
	}

	if err := bff.WriteFile(fsys, opts.Output, res.Output); err != nil {
		return res, err
	}
	res.Written = true

	log.Info().
		Str("output", opts.Output).
		Int("entries", table.Len()).
		Str("size", units.HumanSize(float64(len(res.Output)))).
		Msg("wrote configuration")

	return res, nil
}

func check(fsys afero.Fs, output string, res *Result, log zerolog.Logger) error {
	current, err := afero.ReadFile(fsys, output)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("generate: failed to read %s: %w", output, err)
	}

	res.Diff = bff.Diff(output, "generated", current, res.Output)
	if res.Diff != "" {
		return fmt.Errorf("%w: %s", ErrStale, output)
	}

	log.Info().Str("output", output).Msg("configuration is up to date")

	return nil
}
