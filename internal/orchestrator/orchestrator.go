// Package orchestrator maps package events to Drupal module operations, applies the
// confirmation policy, and dispatches the resulting commands.
package orchestrator

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/conn-castle/drupal-module-installer/internal/binary"
	"github.com/conn-castle/drupal-module-installer/internal/config"
	"github.com/conn-castle/drupal-module-installer/internal/discovery"
	"github.com/conn-castle/drupal-module-installer/internal/event"
	"github.com/conn-castle/drupal-module-installer/internal/messages"
	"github.com/conn-castle/drupal-module-installer/internal/packages"
	"github.com/conn-castle/drupal-module-installer/internal/prompt"
	"github.com/conn-castle/drupal-module-installer/internal/warnings"
)

// Operation is a module operation applied through the configured tool.
type Operation string

const (
	OpInstall   Operation = "install"
	OpUninstall Operation = "uninstall"
)

// Options configures an Orchestrator.
type Options struct {
	Config   *config.Config
	Manager  *binary.Manager
	Prompter prompt.Prompter
	// Repository resolves install paths missing from package events. Optional.
	Repository packages.Repository
	// Out receives notices; nil discards them.
	Out   io.Writer
	Quiet bool
	// AssumeConnected skips the connection check, for dry runs.
	AssumeConnected bool
}

// Orchestrator reacts to package events for one host run.
type Orchestrator struct {
	cfg             *config.Config
	manager         *binary.Manager
	prompter        prompt.Prompter
	repo            packages.Repository
	out             io.Writer
	assumeConnected bool
	session         *Session
}

// New returns an Orchestrator with a fresh Session. Config.AssumeYes pre-sets the blanket skip.
func New(opts Options) *Orchestrator {
	out := opts.Out
	if out == nil || opts.Quiet {
		out = io.Discard
	}
	session := &Session{}
	if opts.Config.AssumeYes {
		session.SkipAll = true
		session.Asked = true
	}
	return &Orchestrator{
		cfg:             opts.Config,
		manager:         opts.Manager,
		prompter:        opts.Prompter,
		repo:            opts.Repository,
		out:             out,
		assumeConnected: opts.AssumeConnected,
		session:         session,
	}
}

// Session returns the run state.
func (o *Orchestrator) Session() *Session {
	return o.session
}

// Subscribe registers the orchestrator's handlers on d.
func (o *Orchestrator) Subscribe(d *event.Dispatcher) {
	d.OnRunFinished(o.OnRunFinished)
	d.OnPackage(event.PostPackageUpdate, o.OnPackageUpdated)
	d.OnPackage(event.PostPackageInstall, o.OnPackageInstalled)
	d.OnPackage(event.PrePackageUninstall, o.OnPackageUninstalling)
}

// OnRunFinished runs database updates when a package was updated, then rebuilds the
// cache. Both are skipped when the tool has no database connection.
func (o *Orchestrator) OnRunFinished(ev event.RunFinished) error {
	exe, err := o.executable()
	if err != nil {
		return err
	}
	if !o.connected(exe) {
		o.notice(messages.OrchestratorNoConnectionFmt, ev.Name, exe.Name())
		return nil
	}
	if o.session.PackageUpdated {
		o.notice(messages.OrchestratorUpdateDatabase)
		o.execute(exe.UpdateDatabase(false), string(ev.Name))
	}
	o.notice(messages.OrchestratorCacheRebuild)
	o.execute(exe.CacheRebuild(), string(ev.Name))
	return nil
}

// OnPackageUpdated marks the run as having updated packages.
func (o *Orchestrator) OnPackageUpdated(event.PackageEvent) error {
	o.session.PackageUpdated = true
	return nil
}

// OnPackageInstalled enables the modules shipped by a newly installed drupal-module package.
func (o *Orchestrator) OnPackageInstalled(ev event.PackageEvent) error {
	return o.packageOperation(OpInstall, ev)
}

// OnPackageUninstalling uninstalls the modules of a drupal-module package about to be removed.
func (o *Orchestrator) OnPackageUninstalling(ev event.PackageEvent) error {
	return o.packageOperation(OpUninstall, ev)
}

// Apply runs op for modules named directly rather than discovered from a package.
func (o *Orchestrator) Apply(op Operation, modules []string) error {
	if op != OpInstall && op != OpUninstall {
		return fmt.Errorf(messages.OrchestratorUnknownOperation, op)
	}
	exe, err := o.executable()
	if err != nil {
		return err
	}
	if !o.connected(exe) {
		o.notice(messages.OrchestratorNoConnectionFmt, op, exe.Name())
		return nil
	}
	return o.apply(exe, op, modules, strings.Join(modules, ", "))
}

// Connected reports whether the configured tool reaches the site database.
func (o *Orchestrator) Connected() (bool, error) {
	exe, err := o.executable()
	if err != nil {
		return false, err
	}
	return o.connected(exe), nil
}

func (o *Orchestrator) packageOperation(op Operation, ev event.PackageEvent) error {
	pkg := ev.Package
	if pkg.Type != packages.TypeDrupalModule {
		return nil
	}
	exe, err := o.executable()
	if err != nil {
		return err
	}
	if !o.connected(exe) {
		o.notice(messages.OrchestratorNoConnectionFmt, pkg.Name, exe.Name())
		return nil
	}

	pkg = o.resolveInstallPath(pkg)
	modules, err := discovery.Modules(pkg, o.cfg.DiscoveryOptions())
	if err != nil {
		o.session.warn(warnings.Warning{
			Code:              warnings.CodeModuleDiscoveryFailed,
			Subject:           pkg.Name,
			Message:           fmt.Sprintf(messages.OrchestratorDiscoveryFailedFmt, pkg.InstallPath),
			Fix:               messages.OrchestratorDiscoveryFix,
			Details:           []string{err.Error()},
			NoiseSuppressible: true,
		})
		return nil
	}
	return o.apply(exe, op, modules, pkg.Name)
}

// apply dedupes modules, reverses them for install, confirms, and dispatches each
// confirmed batch. Execution failures are recorded and do not stop later batches.
func (o *Orchestrator) apply(exe binary.Executable, op Operation, modules []string, subject string) error {
	modules = dedupe(modules)
	if len(modules) == 0 {
		return nil
	}
	if op == OpInstall {
		slices.Reverse(modules)
	}
	o.session.Operations++

	batches, err := o.confirm(op, modules)
	if err != nil {
		return err
	}
	for _, batch := range batches {
		o.notice(messages.OrchestratorApplyFmt, op, strings.Join(batch, ", "))
		switch op {
		case OpInstall:
			exe.Install(batch)
		case OpUninstall:
			exe.Uninstall(batch)
		}
		o.execute(exe, subject)
	}
	return nil
}

// confirm returns the module batches the user agreed to. The first operation of a
// run asks the blanket question; a declined batch of several modules falls back to
// per-module questions.
func (o *Orchestrator) confirm(op Operation, modules []string) ([][]string, error) {
	if !o.session.Asked {
		o.session.Asked = true
		skip, err := o.prompter.SkipAll()
		if err != nil {
			return nil, err
		}
		o.session.SkipAll = skip
	}
	if o.session.SkipAll {
		return [][]string{modules}, nil
	}

	all, err := o.prompter.ConfirmBatch(string(op), modules)
	if err != nil {
		return nil, err
	}
	if all {
		return [][]string{modules}, nil
	}
	if len(modules) == 1 {
		return nil, nil
	}
	var batches [][]string
	for _, module := range modules {
		ok, err := o.prompter.ConfirmModule(string(op), module)
		if err != nil {
			return nil, err
		}
		if ok {
			batches = append(batches, []string{module})
		}
	}
	return batches, nil
}

// executable instantiates the configured tool bound to the Drupal root.
func (o *Orchestrator) executable() (binary.Executable, error) {
	exe, err := o.manager.Instantiate(o.cfg.Binary)
	if err != nil {
		return nil, &config.ConfigurationError{Key: "binary", Err: err}
	}
	root, err := o.cfg.RootDir()
	if err != nil {
		return nil, err
	}
	return exe.SetRoot(root), nil
}

func (o *Orchestrator) connected(exe binary.Executable) bool {
	if o.assumeConnected {
		return true
	}
	return binary.HasConnection(exe)
}

// execute runs the pending command, recording a warning on failure.
func (o *Orchestrator) execute(exe binary.Executable, subject string) {
	if _, err := exe.Execute(); err != nil {
		o.session.Failures++
		o.session.warn(warnings.Warning{
			Code:    warnings.CodeBinaryExecutionFailed,
			Subject: subject,
			Message: fmt.Sprintf(messages.OrchestratorExecutionFailedFmt, exe.Name()),
			Fix:     messages.OrchestratorExecutionFix,
			Details: []string{err.Error()},
			Source:  warnings.SourceExternalDependency,
		})
	}
}

// resolveInstallPath fills a missing install path from the repository and makes
// relative paths absolute against the project directory.
func (o *Orchestrator) resolveInstallPath(pkg packages.Package) packages.Package {
	if strings.TrimSpace(pkg.InstallPath) == "" && o.repo != nil {
		if local, ok := o.repo.FindPackage(pkg.Name); ok {
			pkg.InstallPath = local.InstallPath
		}
	}
	if pkg.InstallPath != "" && !filepath.IsAbs(pkg.InstallPath) {
		pkg.InstallPath = filepath.Join(o.cfg.Paths.ProjectDir, filepath.FromSlash(pkg.InstallPath))
	}
	return pkg
}

func (o *Orchestrator) notice(format string, args ...any) {
	_, _ = fmt.Fprintf(o.out, format, args...)
}

// dedupe drops repeated module names, keeping the first occurrence.
func dedupe(modules []string) []string {
	seen := make(map[string]struct{}, len(modules))
	out := make([]string, 0, len(modules))
	for _, module := range modules {
		module = strings.TrimSpace(module)
		if module == "" {
			continue
		}
		if _, ok := seen[module]; ok {
			continue
		}
		seen[module] = struct{}{}
		out = append(out, module)
	}
	return out
}
