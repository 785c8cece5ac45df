// Package config resolves installer settings from composer.json and an optional dmi.toml.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/conn-castle/drupal-module-installer/internal/discovery"
	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// DefaultBinary is the tool used when none is configured.
const DefaultBinary = "drush"

// Settings are the installer keys shared by extra."drupal-module-installer" in
// composer.json and the dmi.toml overlay. Unset keys stay zero or nil.
type Settings struct {
	Binary       string `json:"binary" toml:"binary"`
	DrupalRoot   string `json:"drupal_root" toml:"drupal_root"`
	Discovery    string `json:"discovery" toml:"discovery"`
	IncludeTests *bool  `json:"include_tests" toml:"include_tests"`
	AssumeYes    *bool  `json:"assume_yes" toml:"assume_yes"`
	// NoiseMode is the warnings noise mode: default or reduce.
	NoiseMode string `json:"noise_mode" toml:"noise_mode"`
}

// Config is the resolved installer configuration for one project.
type Config struct {
	Paths        Paths
	Binary       string
	DrupalRoot   string
	Discovery    discovery.Policy
	IncludeTests bool
	AssumeYes    bool
	NoiseMode    string
	// VendorDir and BinDir are absolute.
	VendorDir string
	BinDir    string
}

// Load reads composer.json and, when present, dmi.toml from projectDir.
func Load(projectDir string) (*Config, error) {
	paths := DefaultPaths(projectDir)
	data, err := os.ReadFile(paths.ComposerPath)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingComposerFmt, paths.ComposerPath, err)
	}
	composer, err := ParseComposer(data, paths.ComposerPath)
	if err != nil {
		return nil, err
	}

	var overlay *Settings
	data, err = os.ReadFile(paths.OverlayPath)
	switch {
	case err == nil:
		overlay, err = ParseOverlay(data, paths.OverlayPath)
		if err != nil {
			return nil, err
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf(messages.ConfigReadOverlayFmt, paths.OverlayPath, err)
	}
	return Resolve(paths, composer, overlay)
}

// ParseOverlay parses dmi.toml data, rejecting keys it does not know.
// source is used in error messages.
func ParseOverlay(data []byte, source string) (*Settings, error) {
	var settings Settings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidOverlayFmt, source, err)
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err)
	}
	return &settings, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
func decodeStrict(data []byte) error {
	var settings Settings
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&settings)
}

// Resolve merges composer settings and the optional overlay into a validated Config.
// The drupal-core installer path wins over extra drupal_root; the overlay wins over both.
func Resolve(paths Paths, composer *Composer, overlay *Settings) (*Config, error) {
	if composer == nil {
		composer = &Composer{VendorDir: defaultVendorDir, BinDir: defaultVendorDir + "/bin"}
	}
	cfg := &Config{Paths: paths, Binary: DefaultBinary}

	merged := composer.Plugin
	if composer.CoreDir != "" {
		merged.DrupalRoot = composer.CoreDir
	}
	if overlay != nil {
		merged = overlaySettings(merged, *overlay)
	}

	if binary := strings.TrimSpace(merged.Binary); binary != "" {
		cfg.Binary = binary
	}
	policy, err := discovery.ParsePolicy(merged.Discovery)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfigValidation, &ConfigurationError{Key: "discovery", Err: err})
	}
	cfg.Discovery = policy
	if merged.IncludeTests != nil {
		cfg.IncludeTests = *merged.IncludeTests
	}
	if merged.AssumeYes != nil {
		cfg.AssumeYes = *merged.AssumeYes
	}
	cfg.NoiseMode = strings.TrimSpace(merged.NoiseMode)

	if cfg.DrupalRoot, err = expand("drupal_root", strings.TrimSpace(merged.DrupalRoot)); err != nil {
		return nil, err
	}
	vendorDir, err := expand("vendor-dir", composer.VendorDir)
	if err != nil {
		return nil, err
	}
	binDir, err := expand("bin-dir", composer.BinDir)
	if err != nil {
		return nil, err
	}
	cfg.VendorDir = cfg.projectPath(vendorDir)
	cfg.BinDir = cfg.projectPath(binDir)
	return cfg, nil
}

func overlaySettings(base Settings, overlay Settings) Settings {
	if overlay.Binary != "" {
		base.Binary = overlay.Binary
	}
	if overlay.DrupalRoot != "" {
		base.DrupalRoot = overlay.DrupalRoot
	}
	if overlay.Discovery != "" {
		base.Discovery = overlay.Discovery
	}
	if overlay.IncludeTests != nil {
		base.IncludeTests = overlay.IncludeTests
	}
	if overlay.AssumeYes != nil {
		base.AssumeYes = overlay.AssumeYes
	}
	if overlay.NoiseMode != "" {
		base.NoiseMode = overlay.NoiseMode
	}
	return base
}

func expand(key string, value string) (string, error) {
	expanded, err := homedir.Expand(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConfigValidation, &ConfigurationError{Key: key, Err: err})
	}
	return expanded, nil
}

// projectPath resolves p against the project directory unless it is absolute.
func (c *Config) projectPath(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Paths.ProjectDir, filepath.FromSlash(p))
}

// RootDir returns the absolute Drupal root. It fails with a *ConfigurationError
// wrapping ErrRootUnresolved when no source names the root.
func (c *Config) RootDir() (string, error) {
	if c.DrupalRoot == "" {
		return "", &ConfigurationError{Key: "drupal_root", Err: ErrRootUnresolved}
	}
	return c.projectPath(c.DrupalRoot), nil
}

// DiscoveryOptions returns the module discovery options for this project.
func (c *Config) DiscoveryOptions() discovery.Options {
	return discovery.Options{Policy: c.Discovery, IncludeTests: c.IncludeTests}
}
