package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conn-castle/drupal-module-installer/internal/messages"
)

func newBinariesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   messages.BinariesUse,
		Short: messages.BinariesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProject(flags, false, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, messages.BinariesHeader)
			for _, id := range proj.manager.Identifiers() {
				meta, _ := proj.manager.Metadata(id)
				mark := ""
				if id == proj.cfg.Binary {
					mark = messages.BinariesDefaultMark
				}
				_, _ = fmt.Fprintf(tw, messages.BinariesRowFmt, id, meta.Package, proj.manager.ExecutablePath(meta), mark)
			}
			return tw.Flush()
		},
	}
}
