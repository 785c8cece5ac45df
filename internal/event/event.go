// Package event defines the package-manager lifecycle events the installer reacts to
// and a small synchronous dispatcher the host uses to deliver them.
package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
	"github.com/conn-castle/drupal-module-installer/internal/packages"
)

// Name identifies a lifecycle event.
type Name string

// Event names, matching the host package manager's script and package events.
const (
	PostUpdateCmd       Name = "post-update-cmd"
	PostInstallCmd      Name = "post-install-cmd"
	PostPackageUpdate   Name = "post-package-update"
	PostPackageInstall  Name = "post-package-install"
	PrePackageUninstall Name = "pre-package-uninstall"
)

// RunFinished fires once at the end of a full install or update cycle.
type RunFinished struct {
	Name Name
}

// PackageEvent carries the package an operation applies to.
type PackageEvent struct {
	Name    Name
	Package packages.Package
}

// Envelope is the wire form of one event in a JSON Lines stream.
type Envelope struct {
	Event   Name           `json:"event"`
	Package *PackageRecord `json:"package,omitempty"`
}

// PackageRecord is the wire form of a package.
type PackageRecord struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	InstallPath string   `json:"install_path"`
	Bin         []string `json:"bin,omitempty"`
}

// IsRunFinished reports whether the envelope ends a host run.
func (e Envelope) IsRunFinished() bool {
	return e.Event == PostUpdateCmd || e.Event == PostInstallCmd
}

// PackageEvent converts a package envelope to its typed payload.
func (e Envelope) PackageEvent() (PackageEvent, error) {
	if e.Package == nil || strings.TrimSpace(e.Package.Name) == "" {
		return PackageEvent{}, fmt.Errorf(messages.EventMissingPackageFmt, e.Event)
	}
	return PackageEvent{
		Name: e.Event,
		Package: packages.Package{
			Name:        strings.TrimSpace(e.Package.Name),
			Type:        e.Package.Type,
			InstallPath: e.Package.InstallPath,
			Bin:         e.Package.Bin,
		},
	}, nil
}

// ReadStream decodes a JSON Lines stream. Blank lines and lines starting with # are skipped.
func ReadStream(r io.Reader) ([]Envelope, error) {
	var envelopes []Envelope
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var env Envelope
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			return nil, fmt.Errorf(messages.EventDecodeLineFmt, lineNo, err)
		}
		if env.Event == "" {
			return nil, fmt.Errorf(messages.EventMissingNameFmt, lineNo)
		}
		envelopes = append(envelopes, env)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EventReadStreamFmt, err)
	}
	return envelopes, nil
}
