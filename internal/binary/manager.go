package binary

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
	"github.com/conn-castle/drupal-module-installer/internal/packages"
)

// Constructor builds a tool bound to an executable path.
type Constructor func(executable string, runner Runner) Executable

// Metadata describes a registered tool.
type Metadata struct {
	// ID is the registry identifier, as configured with the binary setting.
	ID string
	// Binary is the default executable file name.
	Binary string
	// Package is the package that ships the executable, if any.
	Package string
	New     Constructor
}

// Identifiers of the built-in tools.
const (
	IDDrush  = "drush"
	IDDrupal = "drupal"
)

// Builtin returns the static registry of supported tools. The first entry, drush,
// is the default.
func Builtin() map[string]Metadata {
	return map[string]Metadata{
		IDDrush: {
			ID:      IDDrush,
			Binary:  "drush",
			Package: "drush/drush",
			New:     NewDrush,
		},
		IDDrupal: {
			ID:      IDDrupal,
			Binary:  "drupal",
			Package: "drupal/console",
			New:     NewConsole,
		},
	}
}

// Manager holds tool metadata and instantiates tools with resolved executable paths.
type Manager struct {
	repo     packages.Repository
	binDir   string
	runner   Runner
	binaries map[string]Metadata
}

// NewManager returns an empty manager. repo may be nil, in which case tools always
// resolve to their bare executable names.
func NewManager(repo packages.Repository, binDir string, runner Runner) *Manager {
	return &Manager{
		repo:     repo,
		binDir:   binDir,
		runner:   runner,
		binaries: map[string]Metadata{},
	}
}

// Register adds metadata under id, which becomes its ID. Metadata without a
// constructor or executable name cannot be instantiated and is ignored.
func (m *Manager) Register(id string, meta Metadata) *Manager {
	if meta.New == nil || meta.Binary == "" {
		return m
	}
	meta.ID = id
	m.binaries[id] = meta
	return m
}

// RegisterAll registers every entry of binaries.
func (m *Manager) RegisterAll(binaries map[string]Metadata) *Manager {
	for id, meta := range binaries {
		m.Register(id, meta)
	}
	return m
}

// Metadata returns the metadata registered under id.
func (m *Manager) Metadata(id string) (Metadata, bool) {
	meta, ok := m.binaries[id]
	return meta, ok
}

// Identifiers returns the registered ids in sorted order.
func (m *Manager) Identifiers() []string {
	ids := make([]string, 0, len(m.binaries))
	for id := range m.binaries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Instantiate builds the tool registered under id.
func (m *Manager) Instantiate(id string) (Executable, error) {
	meta, ok := m.Metadata(id)
	if !ok {
		return nil, fmt.Errorf(messages.BinaryUnknownIDFmt, id, ErrUnknownBinary)
	}
	return meta.New(m.ExecutablePath(meta), m.runner), nil
}

// ExecutablePath prefers <bin-dir>/<binary> when the owning package is installed locally
// and declares the binary; otherwise it returns the bare name for PATH lookup.
func (m *Manager) ExecutablePath(meta Metadata) string {
	if meta.Package == "" || m.repo == nil || m.binDir == "" {
		return meta.Binary
	}
	pkg, ok := m.repo.FindPackage(meta.Package)
	if !ok || !pkg.HasBinary(meta.Binary) {
		return meta.Binary
	}
	return filepath.Join(m.binDir, meta.Binary)
}
