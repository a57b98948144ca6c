package ui

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/calpanel/internal/zone"
)

func (a *App) offsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "offset [zone]",
		Short: "Print the minutes events are shifted for a time zone",
		Long: `Print the signed minutes added to every instant so that, shown in the
local zone, it reads as the wall clock of the given zone.

The zone is "browser" (the local zone), "utc" or an IANA name and
defaults to the configured time_zone. The value is a snapshot for now.`,
		Example: `  calpanel offset
  calpanel offset utc
  calpanel offset America/New_York`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := a.config.Calendar.TimeZone
			if len(args) == 1 {
				name = args[0]
			}

			minutes, err := zone.Offsetter{Local: time.Local, Now: a.now}.OffsetMinutes(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %+d minutes (%s)\n", name, minutes, FormatOffset(minutes))
			return nil
		},
	}
}

// FormatOffset renders minutes as a signed hours and minutes offset.
func FormatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}
