package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.StatusUse,
		Short: messages.StatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(flags, false, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			root, err := proj.cfg.RootDir()
			if err != nil {
				return err
			}
			connected, err := proj.newOrchestrator(cmd, flags, runOptions{}).Connected()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !connected {
				_, _ = fmt.Fprintf(out, messages.StatusNotConnectedFmt, proj.cfg.Binary, root)
				return &SilentExitError{Code: 1}
			}
			_, _ = fmt.Fprintf(out, messages.StatusConnectedFmt, proj.cfg.Binary, root)
			return nil
		},
	}
}
