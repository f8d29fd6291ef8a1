// Package config loads starling settings from defaults, starling.yml,
// STARLING_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the working directory.
const FileName = "starling.yml"

// EnvPrefix prefixes every environment override, e.g. STARLING_INITIAL_MASS.
const EnvPrefix = "STARLING"

// Config keys, shared by viper, flags and the yaml file.
const (
	KeyModelDir = "model_dir"
	KeyMesaDir  = "mesa_dir"
	KeyMass     = "initial_mass"
	KeyZ        = "initial_z"
	KeyRebuild  = "rebuild"
	KeyRunAfter = "run_after"
	KeyDryRun   = "dry_run"
	KeyShowDiff = "diff"
	KeyShell    = "shell"
	KeyLogLevel = "log_level"
)

// Config holds everything needed to prepare and launch one model.
type Config struct {
	// ModelDir is the MESA work directory holding the inlists, rn and make/.
	ModelDir string `yaml:"model_dir" mapstructure:"model_dir"`
	// MesaDir is the MESA installation; on the teaching VMs it is /opt/mesa.
	MesaDir string `yaml:"mesa_dir" mapstructure:"mesa_dir"`
	// InitialMass in solar masses.
	InitialMass float64 `yaml:"initial_mass" mapstructure:"initial_mass"`
	// InitialZ is the initial metallicity.
	InitialZ float64 `yaml:"initial_z" mapstructure:"initial_z"`
	// Rebuild patches the files and clears LOGS, caches, nohup.out, the
	// star binary and .mod files. Leave it off to re-run an existing model;
	// edits to rn alone do not need a rebuild.
	Rebuild bool `yaml:"rebuild" mapstructure:"rebuild"`
	// RunAfter runs ./clean, ./mk and a detached ./rn when done.
	RunAfter bool `yaml:"run_after" mapstructure:"run_after"`

	DryRun   bool   `yaml:"dry_run,omitempty" mapstructure:"dry_run"`
	ShowDiff bool   `yaml:"diff,omitempty" mapstructure:"diff"`
	Shell    string `yaml:"shell" mapstructure:"shell"`
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
}

// Default returns the settings used when nothing else is configured.
func Default() *Config {
	return &Config{
		ModelDir:    "../data/mesa_model",
		MesaDir:     "/opt/mesa",
		InitialMass: 1.0,
		InitialZ:    0.02,
		Rebuild:     true,
		RunAfter:    true,
		Shell:       "/bin/sh",
		LogLevel:    "info",
	}
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// File is an explicit config path. When empty, FileName is looked up
	// in SearchDir and a missing file is not an error.
	File string
	// SearchDir defaults to the working directory.
	SearchDir string
	// Flags are bound by their config key names; only flags the user
	// actually set override lower layers.
	Flags *pflag.FlagSet
}

// Load merges defaults, the config file, the environment and flags.
func Load(opts LoadOptions) (*Config, error) {
	v := newViper()

	if opts.File != "" {
		v.SetConfigFile(opts.File)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", opts.File, err)
		}
	} else {
		dir := opts.SearchDir
		if dir == "" {
			dir = "."
		}
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading %s: %w", FileName, err)
			}
		}
	}

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Used returns the config file Load would read, or "" if none exists.
func Used(opts LoadOptions) string {
	if opts.File != "" {
		return opts.File
	}
	dir := opts.SearchDir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func newViper() *viper.Viper {
	v := viper.New()

	d := Default()
	v.SetDefault(KeyModelDir, d.ModelDir)
	v.SetDefault(KeyMesaDir, d.MesaDir)
	v.SetDefault(KeyMass, d.InitialMass)
	v.SetDefault(KeyZ, d.InitialZ)
	v.SetDefault(KeyRebuild, d.Rebuild)
	v.SetDefault(KeyRunAfter, d.RunAfter)
	v.SetDefault(KeyDryRun, d.DryRun)
	v.SetDefault(KeyShowDiff, d.ShowDiff)
	v.SetDefault(KeyShell, d.Shell)
	v.SetDefault(KeyLogLevel, d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"model-dir": KeyModelDir,
	"mesa-dir":  KeyMesaDir,
	"mass":      KeyMass,
	"z":         KeyZ,
	"rebuild":   KeyRebuild,
	"run-after": KeyRunAfter,
	"dry-run":   KeyDryRun,
	"diff":      KeyShowDiff,
	"shell":     KeyShell,
	"log-level": KeyLogLevel,
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// Save writes cfg as yaml to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	header := []byte("# starling settings. Flags and STARLING_* variables override these.\n")
	if err := os.WriteFile(path, append(header, data...), 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
