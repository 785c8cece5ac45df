// Package root locates the Composer project that owns a working directory.
package root

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/drupal-module-installer/internal/config"
	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

// FindProjectRoot walks up from start to the nearest directory holding a composer.json file.
// found is false when no ancestor has one. A composer.json that is not a regular file is an error.
func FindProjectRoot(start string) (string, bool, error) {
	if start == "" {
		return "", false, errors.New(messages.RootStartRequired)
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, err
	}
	for {
		candidate := filepath.Join(dir, config.ComposerFile)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && info.Mode().IsRegular():
			return dir, true, nil
		case err == nil:
			return "", false, fmt.Errorf(messages.RootComposerNotFileFmt, candidate)
		case !errors.Is(err, os.ErrNotExist):
			return "", false, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// FindProjectDir returns the project root above start, or start itself when there is none.
func FindProjectDir(start string) (string, error) {
	dir, found, err := FindProjectRoot(start)
	if err != nil {
		return "", err
	}
	if !found {
		return start, nil
	}
	return dir, nil
}
