package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newTZCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tz",
		Short: "Inspect the time zones of a bundle",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List zone and link names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := o.context()
				if err != nil {
					return err
				}
				for _, name := range c.Zones.Names() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "guess",
			Short: "Guess the zone of this machine",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := o.context()
				if err != nil {
					return err
				}
				name := c.GuessZone(true)
				if name == "" {
					return fmt.Errorf("no zone matches the local time")
				}
				fmt.Fprintln(cmd.OutOrStdout(), name)
				return nil
			},
		},
		&cobra.Command{
			Use:   "country <code>",
			Short: "List the zones of a country with their current offsets",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, err := o.context()
				if err != nil {
					return err
				}
				now := c.Now()
				zones := c.Zones.ZoneOffsetsForCountry(args[0], now.UnixMilli())
				if len(zones) == 0 {
					return fmt.Errorf("no zones for country %q", args[0])
				}
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, z := range zones {
					local, _ := now.In(z.Name, false)
					fmt.Fprintf(w, "%s\t%s\n", z.Name, local.Format("Z z"))
				}
				return w.Flush()
			},
		},
	)
	return cmd
}
