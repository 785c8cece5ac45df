package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/conn-castle/drupal-module-installer/internal/event"
	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

const stdinEvents = "-"

func newRunCmd(flags *rootFlags) *cobra.Command {
	var opts runOptions
	var eventsPath string
	var strict bool

	cmd := &cobra.Command{
		Use:   messages.RunUse,
		Short: messages.RunShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(flags, opts.dryRun, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if eventsPath == stdinEvents && !opts.yes && !proj.cfg.AssumeYes {
				return errors.New(messages.RunEventsFromStdinNeedsYes)
			}
			envs, err := readEvents(cmd, eventsPath)
			if err != nil {
				return err
			}

			orch := proj.newOrchestrator(cmd, flags, opts)
			dispatcher := event.NewDispatcher()
			orch.Subscribe(dispatcher)

			session := orch.Session()
			for _, failure := range dispatcher.DispatchAll(envs) {
				message := fmt.Sprintf(messages.EventWarningMessageFmt, failure.Event)
				session.Warnings = append(session.Warnings, errorWarning(string(failure.Event), message, failure.Err))
			}

			if !flags.quiet {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.RunSummaryFmt, len(envs), session.Operations, session.Failures)
			}
			shown := reportWarnings(cmd, proj.cfg, flags.quiet, session.Warnings)
			if strict && shown > 0 {
				return &SilentExitError{Code: 1}
			}
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&eventsPath, "events", stdinEvents, messages.RunFlagEvents)
	cmd.Flags().BoolVar(&strict, "strict", false, messages.RunFlagStrict)
	return cmd
}

// readEvents decodes the event stream at path, or stdin for "-".
func readEvents(cmd *cobra.Command, path string) ([]event.Envelope, error) {
	var in io.Reader = cmd.InOrStdin()
	if path != stdinEvents {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf(messages.RunOpenEventsFmt, path, err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}
	return event.ReadStream(in)
}
