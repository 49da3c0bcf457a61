// Command moment parses, formats and compares dates from the command line.
//
//	moment format 2021-02-03T14:05:09Z -p "dddd, MMMM Do YYYY"
//	moment parse "3 vasario 2021" -f "D MMMM YYYY" -l lt
//	moment humanize P3D --suffix
//	moment from 2021-06-18 --bundle zones.json.zst --zone Europe/Vilnius
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ngrash/go-moment/internal/zonesrc"
	"github.com/ngrash/go-moment/moment"
	"github.com/ngrash/go-moment/tz"
)

// options holds the persistent flags and the environment commands run in.
type options struct {
	locale string
	zone   string
	bundle string
	utc    bool

	logger   *slog.Logger
	clock    func() time.Time
	location *time.Location
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := newRootCmd(&options{logger: logger}).Execute(); err != nil {
		logger.Error("moment failed", "err", err)
		os.Exit(1)
	}
}

func newRootCmd(o *options) *cobra.Command {
	root := &cobra.Command{
		Use:           "moment",
		Short:         "Parse, format and compare dates",
		Long:          "Parse, format and compare dates with moment.js style patterns, locales and time zones.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	f := root.PersistentFlags()
	f.StringVarP(&o.locale, "locale", "l", "", "locale for names and phrases (default en)")
	f.StringVarP(&o.zone, "zone", "z", "", "display dates in this time zone; requires --bundle")
	f.StringVarP(&o.bundle, "bundle", "b", "", "moment-timezone data bundle, JSON or zstd compressed JSON")
	f.BoolVarP(&o.utc, "utc", "u", false, "read and display dates in UTC")

	root.AddCommand(
		newFormatCmd(o),
		newParseCmd(o),
		newHumanizeCmd(o),
		newFromCmd(o),
		newCalendarCmd(o),
		newTZCmd(o),
	)
	return root
}

// context builds the moment context for one command run.
func (o *options) context() (*moment.Context, error) {
	c := &moment.Context{
		Logger:   o.logger,
		Clock:    o.clock,
		Location: o.location,
		Zones:    &tz.Registry{Logger: o.logger},
	}
	if o.bundle != "" {
		zones, err := zonesrc.Registry(o.bundle, o.logger)
		if err != nil {
			return nil, err
		}
		c.Zones = zones
	}
	return c, nil
}

func (o *options) locales() []string {
	if o.locale == "" {
		return nil
	}
	return []string{o.locale}
}

// instant reads a date argument: "now", or anything Parse understands
// without a format.
func (o *options) instant(c *moment.Context, arg string) (moment.Instant, error) {
	var i moment.Instant
	if arg == "" || arg == "now" {
		i = c.Now()
	} else {
		i = c.Parse(arg, moment.ParseConfig{UTC: o.utc})
	}
	if !i.IsValid() {
		return i, fmt.Errorf("invalid date %q", arg)
	}
	return o.display(i)
}

// display applies the locale, zone and UTC flags to i.
func (o *options) display(i moment.Instant) (moment.Instant, error) {
	if o.locale != "" {
		i = i.WithLocale(o.locale)
	}
	switch {
	case o.zone != "":
		z, ok := i.In(o.zone, false)
		if !ok {
			return i, fmt.Errorf("unknown zone %q", o.zone)
		}
		return z, nil
	case o.utc:
		return i.UTC(false), nil
	}
	return i, nil
}

func argOr(args []string, n int, def string) string {
	if len(args) > n {
		return args[n]
	}
	return def
}
