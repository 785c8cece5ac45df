package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
	"github.com/conn-castle/drupal-module-installer/internal/orchestrator"
)

const (
	opInstall   = orchestrator.OpInstall
	opUninstall = orchestrator.OpUninstall
)

// newOperationCmd builds the install or uninstall command. Modules named on the
// command line go through the same confirmation policy as package events.
func newOperationCmd(flags *rootFlags, op orchestrator.Operation) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(flags, opts.dryRun, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			orch := proj.newOrchestrator(cmd, flags, opts)
			if err := orch.Apply(op, args); err != nil {
				return err
			}
			reportWarnings(cmd, proj.cfg, flags.quiet, orch.Session().Warnings)
			if orch.Session().Failures > 0 {
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}
	if op == opUninstall {
		cmd.Use = messages.UninstallUse
		cmd.Short = messages.UninstallShort
	}
	opts.bind(cmd)
	return cmd
}
