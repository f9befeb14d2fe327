package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/de-tools/legal-atlas/pkg/services/config"
)

func NewProfilesCmd(profiles config.Registry) *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List configured report profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			names, err := profiles.GetProfiles(ctx)
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTITLE\tAUTHOR\tFILE")
			for _, name := range names {
				p, err := profiles.GetProfile(ctx, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s.*\n", p.Name, p.Title, p.Author, p.FileStem)
			}
			return tw.Flush()
		},
	}
}
