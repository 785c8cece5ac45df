package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/drupal-module-installer/internal/discovery"
	"github.com/conn-castle/drupal-module-installer/internal/testutil"
)

func TestLoadDefaults(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, ComposerFile, `{"name": "acme/site"}`)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Binary != "drush" {
		t.Fatalf("expected drush, got %q", cfg.Binary)
	}
	if cfg.Discovery != discovery.PolicyScan || cfg.IncludeTests || cfg.AssumeYes {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.VendorDir != filepath.Join(root, "vendor") {
		t.Fatalf("unexpected vendor dir %q", cfg.VendorDir)
	}
	if cfg.BinDir != filepath.Join(root, "vendor", "bin") {
		t.Fatalf("unexpected bin dir %q", cfg.BinDir)
	}
	_, err = cfg.RootDir()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Key != "drupal_root" {
		t.Fatalf("expected drupal_root configuration error, got %v", err)
	}
	if !errors.Is(err, ErrRootUnresolved) {
		t.Fatalf("expected ErrRootUnresolved, got %v", err)
	}
}

func TestLoadMissingComposer(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadPluginExtra(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, ComposerFile, `{
  "extra": {
    "drupal-module-installer": {
      "binary": "drupal",
      "drupal_root": "docroot",
      "discovery": "name",
      "include_tests": true
    }
  }
}`)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Binary != "drupal" || cfg.Discovery != discovery.PolicyName || !cfg.IncludeTests {
		t.Fatalf("unexpected config %+v", cfg)
	}
	rootDir, err := cfg.RootDir()
	if err != nil {
		t.Fatalf("RootDir error: %v", err)
	}
	if rootDir != filepath.Join(root, "docroot") {
		t.Fatalf("unexpected root %q", rootDir)
	}
	opts := cfg.DiscoveryOptions()
	if opts.Policy != discovery.PolicyName || !opts.IncludeTests {
		t.Fatalf("unexpected discovery options %+v", opts)
	}
}

func TestInstallerPathsWinOverDrupalRoot(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, ComposerFile, `{
  "extra": {
    "installer-paths": {
      "web/modules/contrib/{$name}": ["type:drupal-module"],
      "web/core": ["type:drupal-core"],
      "other/core": ["type:drupal-core"]
    },
    "drupal-module-installer": {"drupal_root": "docroot"}
  }
}`)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	rootDir, err := cfg.RootDir()
	if err != nil {
		t.Fatalf("RootDir error: %v", err)
	}
	if rootDir != filepath.Join(root, "web") {
		t.Fatalf("expected first drupal-core entry to win, got %q", rootDir)
	}
}

func TestInstallerPathsOnlyFirstTypeCounts(t *testing.T) {
	composer, err := ParseComposer([]byte(`{"extra": {"installer-paths": {
  "libs/core": ["type:drupal-library", "type:drupal-core"],
  "web/core/": ["type:drupal-core"]
}}}`), "composer.json")
	if err != nil {
		t.Fatalf("ParseComposer error: %v", err)
	}
	if composer.CoreDir != "web" {
		t.Fatalf("unexpected core dir %q", composer.CoreDir)
	}
}

func TestInstallerPathsCoreAtProjectRoot(t *testing.T) {
	composer, err := ParseComposer([]byte(`{"extra": {"installer-paths": {"core": ["type:drupal-core"]}}}`), "composer.json")
	if err != nil {
		t.Fatalf("ParseComposer error: %v", err)
	}
	if composer.CoreDir != "." {
		t.Fatalf("unexpected core dir %q", composer.CoreDir)
	}
}

func TestParseComposerRejectsBadInstallerPaths(t *testing.T) {
	_, err := ParseComposer([]byte(`{"extra": {"installer-paths": ["web/core"]}}`), "composer.json")
	if err == nil || !strings.Contains(err.Error(), "installer-paths") {
		t.Fatalf("expected installer-paths error, got %v", err)
	}
	_, err = ParseComposer([]byte(`{"extra": `), "composer.json")
	if err == nil || !strings.Contains(err.Error(), "composer.json") {
		t.Fatalf("expected syntax error naming source, got %v", err)
	}
}

func TestBinDirSubstitutesVendorDir(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, ComposerFile, `{"config": {"vendor-dir": "lib/vendor"}}`)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.VendorDir != filepath.Join(root, "lib", "vendor") {
		t.Fatalf("unexpected vendor dir %q", cfg.VendorDir)
	}
	if cfg.BinDir != filepath.Join(root, "lib", "vendor", "bin") {
		t.Fatalf("unexpected bin dir %q", cfg.BinDir)
	}

	testutil.WriteFile(t, root, ComposerFile, `{"config": {"bin-dir": "/opt/bin"}}`)
	cfg, err = Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.BinDir != "/opt/bin" {
		t.Fatalf("unexpected absolute bin dir %q", cfg.BinDir)
	}
}

func TestHomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })

	root := t.TempDir()
	testutil.WriteFile(t, root, ComposerFile, `{"extra": {"drupal-module-installer": {"drupal_root": "~/sites/acme"}}}`)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	rootDir, err := cfg.RootDir()
	if err != nil {
		t.Fatalf("RootDir error: %v", err)
	}
	if rootDir != filepath.Join(home, "sites", "acme") {
		t.Fatalf("unexpected expanded root %q", rootDir)
	}
}

func TestOverlayWins(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, ComposerFile, `{
  "extra": {
    "installer-paths": {"web/core": ["type:drupal-core"]},
    "drupal-module-installer": {"binary": "drush", "include_tests": true}
  }
}`)
	testutil.WriteFile(t, root, OverlayFile, `
binary = "drupal"
drupal_root = "/srv/drupal"
include_tests = false
assume_yes = true
noise_mode = "reduce"
`)

	cfg, err := Load(root)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Binary != "drupal" || cfg.IncludeTests || !cfg.AssumeYes || cfg.NoiseMode != "reduce" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	rootDir, err := cfg.RootDir()
	if err != nil {
		t.Fatalf("RootDir error: %v", err)
	}
	if rootDir != "/srv/drupal" {
		t.Fatalf("unexpected root %q", rootDir)
	}
}

func TestOverlayRejectsUnknownKeys(t *testing.T) {
	_, err := ParseOverlay([]byte("binary = \"drush\"\nbinray = \"drupal\"\n"), "dmi.toml")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected ErrConfigValidation, got %v", err)
	}
	if !strings.Contains(err.Error(), "dmi.toml") {
		t.Fatalf("expected source in error, got %v", err)
	}
}

func TestOverlaySyntaxError(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, ComposerFile, `{}`)
	testutil.WriteFile(t, root, OverlayFile, "binary = \n")

	_, err := Load(root)
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, ErrConfigValidation) {
		t.Fatalf("syntax errors are not validation errors: %v", err)
	}
}

func TestInvalidDiscoveryPolicy(t *testing.T) {
	root := t.TempDir()
	testutil.WriteFile(t, root, ComposerFile, `{"extra": {"drupal-module-installer": {"discovery": "guess"}}}`)

	_, err := Load(root)
	if !errors.Is(err, ErrConfigValidation) {
		t.Fatalf("expected ErrConfigValidation, got %v", err)
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Key != "discovery" {
		t.Fatalf("expected discovery configuration error, got %v", err)
	}
}

func TestResolveWithoutComposer(t *testing.T) {
	cfg, err := Resolve(DefaultPaths("/srv/site"), nil, &Settings{DrupalRoot: "web"})
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	rootDir, err := cfg.RootDir()
	if err != nil {
		t.Fatalf("RootDir error: %v", err)
	}
	if rootDir != "/srv/site/web" || cfg.BinDir != "/srv/site/vendor/bin" {
		t.Fatalf("unexpected config %+v root %q", cfg, rootDir)
	}
}

func TestDefaultPaths(t *testing.T) {
	paths := DefaultPaths("/srv/site")
	if paths.ComposerPath != "/srv/site/composer.json" || paths.OverlayPath != "/srv/site/dmi.toml" {
		t.Fatalf("unexpected paths %+v", paths)
	}
}
