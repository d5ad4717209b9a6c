package main

import (
	"fmt"

	"github.com/marcus/notecard/internal/version"
	"github.com/spf13/cobra"
)

func (c *cli) versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of notecard",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			v := version.Effective(Version)
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, v)
				return
			}
			method := version.DetectInstallMethod()
			fmt.Fprintf(out, "notecard version %s\n", v)
			fmt.Fprintf(out, "installed via %s, upgrade with: %s\n", method, version.UpgradeCommand(v, method))
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version")
	return cmd
}
