package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFormatCmd(o *options) *cobra.Command {
	var (
		pattern    string
		iso        bool
		keepOffset bool
	)
	cmd := &cobra.Command{
		Use:   "format [date]",
		Short: "Print a date using a format pattern",
		Long: `Print a date, "now" by default, using a format pattern such as
"dddd, MMMM Do YYYY". Dates are read as ISO 8601 or RFC 2822.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.context()
			if err != nil {
				return err
			}
			i, err := o.instant(c, argOr(args, 0, "now"))
			if err != nil {
				return err
			}
			out := i.Format(pattern)
			if iso {
				out = i.ToISOString(keepOffset)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "format pattern (default ISO 8601 with offset)")
	cmd.Flags().BoolVar(&iso, "iso", false, "print the ISO 8601 string with milliseconds instead")
	cmd.Flags().BoolVar(&keepOffset, "keep-offset", false, "with --iso, keep the display offset instead of converting to UTC")
	return cmd
}
