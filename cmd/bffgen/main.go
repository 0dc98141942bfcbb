// Command bffgen locates the installed C/C++ toolchain and writes its paths
// as a FASTBuild include file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tmaxmax/bffgen/internal/config"
	"github.com/tmaxmax/bffgen/internal/generate"
	"github.com/tmaxmax/bffgen/internal/logging"
	"github.com/tmaxmax/bffgen/pkg/toolchain"
	_ "github.com/tmaxmax/bffgen/pkg/toolchain/msvc"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

type flagValues struct {
	configPath string
	check      bool
	overrides  config.Config
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	var f flagValues

	cmd := &cobra.Command{
		Use:   "bffgen",
		Short: "Write the paths of the installed C/C++ toolchain as a FASTBuild include file",
		Long: "bffgen finds the newest Visual Studio installation with the C++ build tools and the\n" +
			"newest Windows SDK, and writes their directories to a file that FASTBuild can #include.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, &f)
			if err != nil {
				return err
			}

			logger, err := logging.New(stderr, cfg.Log)
			if err != nil {
				return err
			}

			res, err := generate.Run(cmd.Context(), generate.Options{
				Locator: cfg.Locator,
				Locate: toolchain.LocateOptions{
					ToolPath:   cfg.VSWhere,
					Component:  cfg.Component,
					SDKRoot:    cfg.SDKRoot,
					HostArch:   cfg.HostArch,
					TargetArch: cfg.TargetArch,
				},
				Output: cfg.Output,
				Check:  f.check,
				Logger: logger,
			})
			if res != nil && res.Diff != "" {
				fmt.Fprint(stdout, res.Diff)
			}

			return err
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVarP(&f.configPath, "config", "c", "", "TOML configuration file")
	flags.BoolVar(&f.check, "check", false, "compare the output file with the generated configuration instead of writing it")
	flags.StringVarP(&f.overrides.Output, "output", "o", config.DefaultOutput, "file to write")
	flags.StringVar(&f.overrides.Locator, "locator", config.DefaultLocator, "toolchain locator to use")
	flags.StringVar(&f.overrides.VSWhere, "vswhere", "", "path to vswhere.exe (default: looked up on PATH)")
	flags.StringVar(&f.overrides.Component, "component", "", "component the installation must provide")
	flags.StringVar(&f.overrides.SDKRoot, "sdk-root", "", "Windows SDK base directory")
	flags.StringVar(&f.overrides.HostArch, "host-arch", "x64", "architecture of the build machine")
	flags.StringVar(&f.overrides.TargetArch, "target-arch", "x64", "architecture to build for")
	flags.StringVar(&f.overrides.Log.Level, "log-level", "info", "trace, debug, info, warn, error or off")

	cmd.AddCommand(newLocatorsCommand(stdout))

	return cmd
}

// loadConfig applies the flags the user set on top of the file and
// environment configuration.
func loadConfig(cmd *cobra.Command, f *flagValues) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	for name, v := range map[string]struct {
		dst *string
		src string
	}{
		"output":      {&cfg.Output, f.overrides.Output},
		"locator":     {&cfg.Locator, f.overrides.Locator},
		"vswhere":     {&cfg.VSWhere, f.overrides.VSWhere},
		"component":   {&cfg.Component, f.overrides.Component},
		"sdk-root":    {&cfg.SDKRoot, f.overrides.SDKRoot},
		"host-arch":   {&cfg.HostArch, f.overrides.HostArch},
		"target-arch": {&cfg.TargetArch, f.overrides.TargetArch},
		"log-level":   {&cfg.Log.Level, f.overrides.Log.Level},
	} {
		if flags.Changed(name) {
			*v.dst = v.src
		}
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func newLocatorsCommand(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "locators",
		Short: "List the available toolchain locators",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			for _, name := range toolchain.Locators() {
				fmt.Fprintln(stdout, name)
			}
		},
	}
}
