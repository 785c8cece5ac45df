package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

const (
	pluginExtraKey   = "drupal-module-installer"
	coreInstallerKey = "type:drupal-core"
	vendorDirToken   = "{$vendor-dir}"

	defaultVendorDir = "vendor"
	defaultBinDir    = vendorDirToken + "/bin"
)

// Composer is the subset of a project composer.json the installer reads.
type Composer struct {
	// Plugin holds extra."drupal-module-installer".
	Plugin Settings
	// CoreDir is the parent of the first installer-paths entry for drupal-core.
	// It is empty when no such entry exists.
	CoreDir   string
	VendorDir string
	BinDir    string
}

type composerFile struct {
	Extra struct {
		Plugin         Settings        `json:"drupal-module-installer"`
		InstallerPaths json.RawMessage `json:"installer-paths"`
	} `json:"extra"`
	Config struct {
		VendorDir string `json:"vendor-dir"`
		BinDir    string `json:"bin-dir"`
	} `json:"config"`
}

// ParseComposer parses composer.json data. source is used in error messages.
func ParseComposer(data []byte, source string) (*Composer, error) {
	var file composerFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidComposerFmt, source, err)
	}
	coreDir, err := coreDirFromInstallerPaths(file.Extra.InstallerPaths)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidInstallerPathsFmt, source, err)
	}

	vendorDir := strings.TrimSpace(file.Config.VendorDir)
	if vendorDir == "" {
		vendorDir = defaultVendorDir
	}
	binDir := strings.TrimSpace(file.Config.BinDir)
	if binDir == "" {
		binDir = defaultBinDir
	}
	binDir = strings.ReplaceAll(binDir, vendorDirToken, vendorDir)

	return &Composer{
		Plugin:    file.Extra.Plugin,
		CoreDir:   coreDir,
		VendorDir: vendorDir,
		BinDir:    binDir,
	}, nil
}

// coreDirFromInstallerPaths walks installer-paths in document order and returns the
// parent directory of the first path whose first type is drupal-core.
func coreDirFromInstallerPaths(raw json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(raw)) == 0 || string(bytes.TrimSpace(raw)) == "null" {
		return "", nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", errors.New(messages.ConfigInstallerPathsNotObject)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		installPath, _ := tok.(string)
		var types []any
		if err := dec.Decode(&types); err != nil {
			return "", err
		}
		if len(types) == 0 || types[0] != coreInstallerKey {
			continue
		}
		return parentDir(installPath), nil
	}
	return "", nil
}

// parentDir returns the directory holding installPath, ignoring trailing slashes.
func parentDir(installPath string) string {
	trimmed := strings.TrimRight(installPath, "/")
	if trimmed == "" && installPath != "" {
		return "/"
	}
	return path.Dir(trimmed)
}
