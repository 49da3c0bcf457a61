package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-moment/moment"
)

func newParseCmd(o *options) *cobra.Command {
	var (
		formats    []string
		strict     bool
		keepOffset bool
		showFlags  bool
	)
	cmd := &cobra.Command{
		Use:   "parse <input>",
		Short: "Parse a date and print how it was read",
		Long: `Parse input with the given formats, or as ISO 8601 and RFC 2822 when
none are given, and print the resulting date. With several formats the
best match wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.context()
			if err != nil {
				return err
			}
			i := c.Parse(args[0], moment.ParseConfig{
				Formats:    formats,
				Locale:     o.locale,
				Strict:     strict,
				UTC:        o.utc,
				KeepOffset: keepOffset,
			})

			out := cmd.OutOrStdout()
			if showFlags {
				b, err := json.MarshalIndent(i.ParsingFlags(), "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(b))
			}
			if !i.IsValid() {
				if f := i.InvalidAt(); f != moment.NoOverflow {
					return fmt.Errorf("invalid date %q: %s out of range", args[0], f)
				}
				return fmt.Errorf("invalid date %q", args[0])
			}
			if !keepOffset {
				if i, err = o.display(i); err != nil {
					return err
				}
			}
			fmt.Fprintln(out, i.Inspect())
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&formats, "format", "f", nil, "format pattern; repeat to try several")
	cmd.Flags().BoolVarP(&strict, "strict", "s", false, "require the input to match the format exactly")
	cmd.Flags().BoolVar(&keepOffset, "keep-offset", false, "keep the UTC offset found in the input")
	cmd.Flags().BoolVar(&showFlags, "flags", false, "print the parsing flags as JSON")
	return cmd
}
