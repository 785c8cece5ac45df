package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/conn-castle/drupal-module-installer/internal/binary"
	"github.com/conn-castle/drupal-module-installer/internal/config"
	"github.com/conn-castle/drupal-module-installer/internal/envfile"
	"github.com/conn-castle/drupal-module-installer/internal/event"
	"github.com/conn-castle/drupal-module-installer/internal/messages"
	"github.com/conn-castle/drupal-module-installer/internal/orchestrator"
	"github.com/conn-castle/drupal-module-installer/internal/packages"
	"github.com/conn-castle/drupal-module-installer/internal/prompt"
	"github.com/conn-castle/drupal-module-installer/internal/warnings"
)

var newUI = prompt.New

// newRunner builds the process runner. env is nil when the project has no .env variables.
var newRunner = func(projectDir string, env []string) binary.Runner {
	return binary.RealRunner{Dir: projectDir, Env: env}
}

// project is a loaded project ready to run module operations.
type project struct {
	cfg     *config.Config
	repo    *packages.Local
	manager *binary.Manager
}

// runOptions are the flags shared by commands that run module operations.
type runOptions struct {
	yes    bool
	dryRun bool
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.yes, "yes", "y", false, messages.FlagYes)
	cmd.Flags().BoolVar(&o.dryRun, "dry-run", false, messages.FlagDryRun)
}

// loadProject reads the project configuration, installed packages, and .env file.
// A dry run records commands to out instead of spawning them.
func loadProject(flags *rootFlags, dryRun bool, out io.Writer) (*project, error) {
	dir, err := flags.dir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	repo, err := packages.LoadLocal(cfg.VendorDir)
	if err != nil {
		return nil, err
	}
	vars, err := envfile.Load(filepath.Join(cfg.Paths.ProjectDir, envfile.Name))
	if err != nil {
		return nil, err
	}
	var env []string
	if len(vars) > 0 {
		env = envfile.Environ(os.Environ(), vars)
	}
	runner := newRunner(cfg.Paths.ProjectDir, env)
	if dryRun {
		runner = &binary.RecordingRunner{Out: out}
	}
	return &project{
		cfg:     cfg,
		repo:    repo,
		manager: binary.NewManager(repo, cfg.BinDir, runner).RegisterAll(binary.Builtin()),
	}, nil
}

// newOrchestrator builds the run orchestrator. Prompts read from in and write to out.
func (p *project) newOrchestrator(cmd *cobra.Command, flags *rootFlags, opts runOptions) *orchestrator.Orchestrator {
	if opts.yes {
		p.cfg.AssumeYes = true
	}
	return orchestrator.New(orchestrator.Options{
		Config:          p.cfg,
		Manager:         p.manager,
		Prompter:        prompt.UIPrompter{UI: newUI(cmd.InOrStdin(), cmd.OutOrStdout())},
		Repository:      p.repo,
		Out:             cmd.OutOrStdout(),
		Quiet:           flags.quiet,
		AssumeConnected: opts.dryRun,
	})
}

// reportWarnings renders items to stderr after noise control and returns how many
// were shown. --quiet forces the reduce mode.
func reportWarnings(cmd *cobra.Command, cfg *config.Config, quiet bool, items []warnings.Warning) int {
	mode := cfg.NoiseMode
	if quiet {
		mode = warnings.NoiseModeReduce
	}
	shown := warnings.ApplyNoiseControl(items, mode)
	warnings.Render(cmd.ErrOrStderr(), shown)
	return len(shown)
}

// errorWarning converts a handler or operation error into a warning.
func errorWarning(subject string, message string, err error) warnings.Warning {
	w := warnings.Warning{
		Code:    warnings.CodeEventFailed,
		Subject: subject,
		Message: message,
		Fix:     messages.EventWarningFix,
		Details: []string{err.Error()},
	}
	var cfgErr *config.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		w.Code = warnings.CodeConfigurationInvalid
		w.Subject = cfgErr.Key
		w.Fix = messages.ConfigWarningFix
		w.Severity = warnings.SeverityCritical
	case errors.Is(err, event.ErrNoHandler):
		w.Fix = messages.EventWarningUnknownFix
		w.NoiseSuppressible = true
	}
	return w
}
