// Package config loads the host process configuration.
//
// Precedence (highest to lowest): flags > ASLSP_ environment > aslsp.yaml >
// defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"aslsp/internal/logger"
)

const (
	// FileName is looked up in the working directory when no file is given.
	FileName  = "aslsp.yaml"
	EnvPrefix = "ASLSP_"

	DefaultMaxDiagnostics = 100
	DefaultProbeCache     = 16
)

// Config is the host configuration. FrameworkLib is the SDK "frameworks"
// directory every resolution runs against.
type Config struct {
	FrameworkLib   string `koanf:"framework_lib"`
	LogLevel       string `koanf:"log_level"`
	LogJSON        bool   `koanf:"log_json"`
	MaxDiagnostics int    `koanf:"max_diagnostics"`
	ProbeCache     int    `koanf:"probe_cache"`
	Timings        bool   `koanf:"timings"`

	// FileUsed is the configuration file that was read, if any.
	FileUsed string `koanf:"-"`
}

var ErrInvalid = errors.New("invalid configuration")

func defaults() map[string]any {
	return map[string]any{
		"framework_lib":   "",
		"log_level":       string(logger.InfoLevel),
		"log_json":        false,
		"max_diagnostics": DefaultMaxDiagnostics,
		"probe_cache":     DefaultProbeCache,
		"timings":         false,
	}
}

// Load reads the configuration using the working directory to find
// aslsp.yaml. cfgFile, when set, must exist.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return LoadFrom(wd, cfgFile, flags)
}

// LoadFrom is Load with an explicit directory for the default file.
func LoadFrom(dir, cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := cfgFile
	if used == "" {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			used = candidate
		}
	}
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
		if err := resolveFileRelative(k, used); err != nil {
			return nil, err
		}
	}

	// ASLSP_FRAMEWORK_LIB -> framework_lib
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used
	// env and flag values are relative to dir
	if cfg.FrameworkLib != "" && !filepath.IsAbs(cfg.FrameworkLib) {
		cfg.FrameworkLib = filepath.Join(dir, cfg.FrameworkLib)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// resolveFileRelative anchors a relative framework_lib read from the file at
// path to the directory holding that file.
func resolveFileRelative(k *koanf.Koanf, path string) error {
	lib := k.String("framework_lib")
	if lib == "" || filepath.IsAbs(lib) {
		return nil
	}
	fileDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return fmt.Errorf("resolve config directory of %s: %w", path, err)
	}
	if err := k.Set("framework_lib", filepath.Join(fileDir, lib)); err != nil {
		return fmt.Errorf("set framework_lib: %w", err)
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch logger.LogLevel(strings.ToLower(c.LogLevel)) {
	case logger.DebugLevel, logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel, logger.DisabledLevel:
	default:
		return fmt.Errorf("%w: log_level %q (expected debug|info|warn|error|disabled)", ErrInvalid, c.LogLevel)
	}
	if c.MaxDiagnostics < 0 {
		return fmt.Errorf("%w: max_diagnostics must not be negative", ErrInvalid)
	}
	if c.ProbeCache < 0 {
		return fmt.Errorf("%w: probe_cache must not be negative", ErrInvalid)
	}
	return nil
}

// LoggerConfig maps the host settings onto a logger configuration.
func (c *Config) LoggerConfig() *logger.Config {
	cfg := logger.DefaultConfig()
	cfg.Level = logger.ParseLevel(c.LogLevel)
	cfg.JSON = c.LogJSON
	return cfg
}

// BindFlags registers the flags Load understands.
func BindFlags(flags *pflag.FlagSet) {
	flags.String("framework-lib", "", "SDK frameworks directory")
	flags.String("log-level", string(logger.InfoLevel), "log level (debug|info|warn|error|disabled)")
	flags.Bool("log-json", false, "log as JSON")
	flags.Int("max-diagnostics", DefaultMaxDiagnostics, "maximum problems printed (0 = all)")
	flags.Int("probe-cache", DefaultProbeCache, "SDK probe cache size (0 disables)")
	flags.Bool("timings", false, "report step timings")
}
