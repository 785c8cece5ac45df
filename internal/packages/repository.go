// Package packages reads the host package manager's record of installed packages.
package packages

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// TypeDrupalModule is the package type handled by the installer.
const TypeDrupalModule = "drupal-module"

// Package describes one installed package.
type Package struct {
	Name string `json:"name"`
	Type string `json:"type"`
	// Bin lists executables the package declares, relative to its install path.
	Bin []string `json:"bin"`
	// InstallPath is the package directory. Relative paths from installed.json are
	// resolved against the directory that holds the file.
	InstallPath string `json:"install-path"`
}

// HasBinary reports whether the package declares an executable with the given base name.
func (p Package) HasBinary(name string) bool {
	for _, bin := range p.Bin {
		if filepath.Base(bin) == name {
			return true
		}
	}
	return false
}

// ShortName returns the package name without its vendor prefix.
func (p Package) ShortName() string {
	name := strings.TrimRight(p.Name, "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		return name[idx+1:]
	}
	return name
}

// Repository looks up installed packages by name.
type Repository interface {
	FindPackage(name string) (Package, bool)
}

// Local is an in-memory repository loaded from installed.json.
type Local struct {
	packages map[string]Package
}

// NewLocal builds a repository from a package list. Later duplicates replace earlier ones.
func NewLocal(pkgs []Package) *Local {
	local := &Local{packages: make(map[string]Package, len(pkgs))}
	for _, pkg := range pkgs {
		local.packages[strings.ToLower(pkg.Name)] = pkg
	}
	return local
}

// FindPackage returns the package registered under name (case-insensitive).
func (l *Local) FindPackage(name string) (Package, bool) {
	if l == nil {
		return Package{}, false
	}
	pkg, ok := l.packages[strings.ToLower(name)]
	return pkg, ok
}

// Len returns the number of packages in the repository.
func (l *Local) Len() int {
	if l == nil {
		return 0
	}
	return len(l.packages)
}

// InstalledPath returns the installed.json location for a vendor directory.
func InstalledPath(vendorDir string) string {
	return filepath.Join(vendorDir, "composer", "installed.json")
}

// LoadLocal reads <vendorDir>/composer/installed.json.
// A missing file yields an empty repository: nothing has been installed yet.
func LoadLocal(vendorDir string) (*Local, error) {
	path := InstalledPath(vendorDir)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewLocal(nil), nil
		}
		return nil, fmt.Errorf(messages.PackagesReadInstalledFmt, path, err)
	}
	pkgs, err := ParseInstalled(data)
	if err != nil {
		return nil, fmt.Errorf(messages.PackagesParseInstalledFmt, path, err)
	}
	base := filepath.Dir(path)
	for i := range pkgs {
		if pkgs[i].InstallPath != "" && !filepath.IsAbs(pkgs[i].InstallPath) {
			pkgs[i].InstallPath = filepath.Clean(filepath.Join(base, pkgs[i].InstallPath))
		}
	}
	return NewLocal(pkgs), nil
}

// ParseInstalled decodes both installed.json layouts: the bare list written by
// Composer 1 and the {"packages": [...]} object written by Composer 2.
func ParseInstalled(data []byte) ([]Package, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var pkgs []Package
		if err := json.Unmarshal(data, &pkgs); err != nil {
			return nil, err
		}
		return pkgs, nil
	}
	var doc struct {
		Packages []Package `json:"packages"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc.Packages, nil
}
