// Package discovery finds the Drupal modules shipped by an installed package.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
	"github.com/conn-castle/drupal-module-installer/internal/packages"
)

// Policy selects how module names are derived from a package.
type Policy string

const (
	// PolicyScan walks the install path for *.module files.
	PolicyScan Policy = "scan"
	// PolicyName takes the trailing segment of the package name.
	PolicyName Policy = "name"
)

// ParsePolicy validates a configured policy. Empty selects PolicyScan.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PolicyScan:
		return PolicyScan, nil
	case PolicyName:
		return PolicyName, nil
	default:
		return "", fmt.Errorf(messages.DiscoveryUnknownPolicyFmt, raw)
	}
}

// Error reports an install path that could not be scanned.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf(messages.DiscoveryScanFailedFmt, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

const moduleExt = ".module"

// Options configures module discovery.
type Options struct {
	Policy Policy
	// IncludeTests keeps modules located under a tests directory.
	IncludeTests bool
}

// Modules returns the modules shipped by pkg according to opts.
func Modules(pkg packages.Package, opts Options) ([]string, error) {
	if opts.Policy == PolicyName {
		if name := pkg.ShortName(); name != "" {
			return []string{name}, nil
		}
		return nil, nil
	}
	return Scan(pkg.InstallPath, opts.IncludeTests)
}

// Scan walks dir in lexical order and returns the base names of *.module files.
// Files with a "tests" directory between dir and the file are skipped unless
// includeTests is set. A missing or unreadable dir returns an *Error.
func Scan(dir string, includeTests bool) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, &Error{Path: dir, Err: errors.New(messages.DiscoveryInstallPathEmpty)}
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &Error{Path: dir, Err: err}
	}
	if !info.IsDir() {
		return nil, &Error{Path: dir, Err: errors.New(messages.DiscoveryNotDirectory)}
	}

	var modules []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() || filepath.Ext(d.Name()) != moduleExt {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		if !includeTests && inTestsDir(rel) {
			return nil
		}
		modules = append(modules, strings.TrimSuffix(d.Name(), moduleExt))
		return nil
	})
	if err != nil {
		return nil, &Error{Path: dir, Err: err}
	}
	return modules, nil
}

// inTestsDir reports whether any directory segment of rel is "tests".
func inTestsDir(rel string) bool {
	segments := strings.Split(filepath.ToSlash(filepath.Dir(rel)), "/")
	for _, segment := range segments {
		if segment == "tests" {
			return true
		}
	}
	return false
}
