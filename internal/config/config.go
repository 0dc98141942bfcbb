package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvOutput     = "BFFGEN_OUTPUT"
	EnvSDKRoot    = "BFFGEN_SDK_ROOT"
	EnvVSWhere    = "BFFGEN_VSWHERE"
	EnvLogLevel   = "BFFGEN_LOG_LEVEL"
	EnvLogNoColor = "BFFGEN_LOG_NOCOLOR"
	EnvLogTime    = "BFFGEN_LOG_TIMESTAMP"

	DefaultOutput  = "path.gen.bff"
	DefaultLocator = "msvc"
)

// Config drives a single generation run.
type Config struct {
	Output     string
	Locator    string
	VSWhere    string
	Component  string
	SDKRoot    string
	HostArch   string
	TargetArch string
	Log        LogConfig
}

type LogConfig struct {
	Level     string
	NoColor   bool
	Timestamp bool
}

func Default() Config {
	return Config{
		Output:     DefaultOutput,
		Locator:    DefaultLocator,
		HostArch:   "x64",
		TargetArch: "x64",
		Log: LogConfig{
			Level: "info",
		},
	}
}

type fileConfig struct {
	Output     string        `toml:"output"`
	Locator    string        `toml:"locator"`
	VSWhere    string        `toml:"vswhere"`
	Component  string        `toml:"component"`
	SDKRoot    string        `toml:"sdk_root"`
	HostArch   string        `toml:"host_arch"`
	TargetArch string        `toml:"target_arch"`
	Log        fileLogConfig `toml:"log"`
}

type fileLogConfig struct {
	Level     string `toml:"level"`
	NoColor   bool   `toml:"no_color"`
	Timestamp bool   `toml:"timestamp"`
}

// Load returns the defaults overridden by the TOML file at path, if path is
// not empty, and then by the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	setString := func(key string, dst *string, value string) {
		if meta.IsDefined(strings.Split(key, ".")...) {
			*dst = strings.TrimSpace(value)
		}
	}

	setString("output", &cfg.Output, raw.Output)
	setString("locator", &cfg.Locator, raw.Locator)
	setString("vswhere", &cfg.VSWhere, raw.VSWhere)
	setString("component", &cfg.Component, raw.Component)
	setString("sdk_root", &cfg.SDKRoot, raw.SDKRoot)
	setString("host_arch", &cfg.HostArch, raw.HostArch)
	setString("target_arch", &cfg.TargetArch, raw.TargetArch)
	setString("log.level", &cfg.Log.Level, raw.Log.Level)

	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}
	if meta.IsDefined("log", "timestamp") {
		cfg.Log.Timestamp = raw.Log.Timestamp
	}

	return nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		cfg.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvSDKRoot)); v != "" {
		cfg.SDKRoot = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvVSWhere)); v != "" {
		cfg.VSWhere = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}

	for _, b := range []struct {
		env string
		dst *bool
	}{
		{EnvLogNoColor, &cfg.Log.NoColor},
		{EnvLogTime, &cfg.Log.Timestamp},
	} {
		raw := strings.TrimSpace(os.Getenv(b.env))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("config env %s: %w", b.env, err)
		}
		*b.dst = v
	}

	return nil
}

// Validate checks the fields every run needs. Architecture names are left
// to the locator, which knows which ones it supports.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("config missing output")
	}
	if strings.TrimSpace(c.Locator) == "" {
		return fmt.Errorf("config missing locator")
	}
	return nil
}
