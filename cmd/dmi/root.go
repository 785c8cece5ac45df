package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
	"github.com/conn-castle/drupal-module-installer/internal/root"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	projectDir string
	quiet      bool
}

// dir returns the project directory. Without --project-dir it is the nearest
// ancestor of the working directory holding composer.json.
func (f *rootFlags) dir() (string, error) {
	if f.projectDir != "" {
		return f.projectDir, nil
	}
	cwd, err := getwd()
	if err != nil {
		return "", err
	}
	return root.FindProjectDir(cwd)
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().Bool("version", false, messages.RootVersionFlag)
	cmd.PersistentFlags().StringVar(&flags.projectDir, "project-dir", "", messages.RootFlagProjectDir)
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, messages.RootFlagQuiet)

	cmd.AddCommand(
		newRunCmd(flags),
		newOperationCmd(flags, opInstall),
		newOperationCmd(flags, opUninstall),
		newStatusCmd(flags),
		newBinariesCmd(flags),
	)
	return cmd
}
