package ui

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) framesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frames",
		Short: "List stored frames",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			infos, err := a.repo.ListFrames(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing frames: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(infos) == 0 {
				fmt.Fprintln(out, "No frames stored. Add some with: calpanel import FILE")
				return nil
			}
			for _, info := range infos {
				fmt.Fprintf(out, "  %-24s %5d rows  %2d fields  %s\n",
					formatHeader(info.Name), info.Rows, info.Fields,
					formatMuted(info.CreatedAt.Local().Format("2006-01-02 15:04")))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "rm NAME",
		Short: "Delete a stored frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteFrame(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("deleting frame: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted frame %s\n", args[0])
			return nil
		},
	})

	return cmd
}
