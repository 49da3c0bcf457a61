package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-moment/moment"
)

func newHumanizeCmd(o *options) *cobra.Command {
	var (
		suffix     bool
		thresholds map[string]string
	)
	cmd := &cobra.Command{
		Use:   "humanize <duration>",
		Short: "Describe a duration in words",
		Long: `Describe a duration, given as milliseconds, "[-][d.]hh:mm[:ss]" or
ISO 8601 ("P3DT4H"), in words such as "3 days".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.context()
			if err != nil {
				return err
			}
			d := moment.ParseDuration(args[0])
			if !d.IsValid() {
				return fmt.Errorf("invalid duration %q", args[0])
			}
			th, err := parseThresholds(thresholds)
			if err != nil {
				return err
			}
			d = d.WithLocale(c.Locale(o.locales()...))
			fmt.Fprintln(cmd.OutOrStdout(), d.HumanizeWith(suffix, th))
			return nil
		},
	}
	cmd.Flags().BoolVar(&suffix, "suffix", false, `add "in" or "ago"`)
	cmd.Flags().StringToStringVarP(&thresholds, "threshold", "t", nil, "override thresholds by key (ss, s, m, h, d, w, M), e.g. d=7,w=4")
	return cmd
}

// parseThresholds applies overrides such as {"d": "7"} to the defaults.
func parseThresholds(raw map[string]string) (moment.Thresholds, error) {
	th := moment.DefaultThresholds()
	fields := map[string]*float64{
		"ss": &th.SS,
		"s":  &th.S,
		"m":  &th.M,
		"h":  &th.H,
		"d":  &th.D,
		"w":  &th.W,
		"M":  &th.Mo,
	}
	for k, v := range raw {
		p, ok := fields[k]
		if !ok {
			return th, fmt.Errorf("unknown threshold %q", k)
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return th, fmt.Errorf("threshold %s: %w", k, err)
		}
		*p = f
	}
	return th, nil
}

func newFromCmd(o *options) *cobra.Command {
	var withoutSuffix bool
	cmd := &cobra.Command{
		Use:   "from <date> [reference]",
		Short: "Describe a date relative to now or to a reference date",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.context()
			if err != nil {
				return err
			}
			i, err := o.instant(c, args[0])
			if err != nil {
				return err
			}
			ref, err := o.instant(c, argOr(args, 1, "now"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i.From(ref, withoutSuffix))
			return nil
		},
	}
	cmd.Flags().BoolVar(&withoutSuffix, "no-suffix", false, `leave out "in" and "ago"`)
	return cmd
}

func newCalendarCmd(o *options) *cobra.Command {
	var overrides map[string]string
	cmd := &cobra.Command{
		Use:   "calendar <date> [reference]",
		Short: `Describe a date like "Tomorrow at 9:00 AM"`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.context()
			if err != nil {
				return err
			}
			i, err := o.instant(c, args[0])
			if err != nil {
				return err
			}
			ref, err := o.instant(c, argOr(args, 1, "now"))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), i.Calendar(&ref, overrides))
			return nil
		},
	}
	cmd.Flags().StringToStringVar(&overrides, "as", nil, "format per bucket (sameDay, nextDay, nextWeek, lastDay, lastWeek, sameElse)")
	return cmd
}
