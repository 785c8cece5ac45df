package config

import "path/filepath"

// File names read from the project directory.
const (
	ComposerFile = "composer.json"
	OverlayFile  = "dmi.toml"
)

// Paths holds resolved paths for the configuration files of a project.
type Paths struct {
	ProjectDir   string
	ComposerPath string
	OverlayPath  string
}

// DefaultPaths returns the configuration paths for a project directory.
func DefaultPaths(projectDir string) Paths {
	return Paths{
		ProjectDir:   projectDir,
		ComposerPath: filepath.Join(projectDir, ComposerFile),
		OverlayPath:  filepath.Join(projectDir, OverlayFile),
	}
}
