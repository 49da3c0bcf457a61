// Command tzinfo prints the rule table of a zone read from a TZif file or
// from a moment-timezone bundle.
//
//	tzinfo [-from year] [-to year] [-tzif file] <tzif file | bundle#zone>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"text/tabwriter"

	"github.com/ngrash/go-moment/internal/zonesrc"
	"github.com/ngrash/go-moment/moment"
	"github.com/ngrash/go-moment/tz"
)

var (
	fromFlag = flag.Int("from", 0, "first year to print (0 prints from the start)")
	toFlag   = flag.Int("to", 0, "last year to print (0 prints to the end)")
	tzifFlag = flag.String("tzif", "", "also write the zone as a TZif file to this path")
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger); err != nil {
		logger.Error("tzinfo failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		return fmt.Errorf("usage: tzinfo [flags] <tzif file | bundle#zone>")
	}

	z, err := zonesrc.Open(args[0], logger)
	if err != nil {
		return err
	}
	if *fromFlag != 0 || *toFlag != 0 {
		to := *toFlag
		if to == 0 {
			to = tz.FooterHorizon
		}
		z = tz.FilterYears(z, *fromFlag, to)
	}

	if *tzifFlag != "" {
		if err := writeTZif(*tzifFlag, z); err != nil {
			return err
		}
		logger.Info("wrote TZif file", "zone", z.Name, "path", *tzifFlag)
	}

	printZone(z)
	return nil
}

func writeTZif(path string, z *tz.Zone) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tz.EncodeTZif(f, z); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", z.Name, err)
	}
	return f.Close()
}

func printZone(z *tz.Zone) {
	fmt.Println("Zone", z.Name)
	if z.Population > 0 {
		fmt.Println("  population =", z.Population)
	}
	fmt.Println("  segments   =", len(z.Untils))
	fmt.Println()

	c := &moment.Context{}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UNTIL (UTC)\tABBR\tUTC OFFSET")
	for _, s := range z.Segments() {
		until := "forever"
		if s.Until != tz.Forever {
			until = c.UnixMilli(s.Until).UTC(false).Format("YYYY-MM-DD HH:mm:ss")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", until, s.Abbr, formatOffset(-s.Offset))
	}
	w.Flush()
}

// formatOffset renders minutes east of UTC as ±HH:MM.
func formatOffset(minutes float64) string {
	sign := '+'
	if minutes < 0 {
		sign, minutes = '-', -minutes
	}
	m := int(math.Round(minutes))
	return fmt.Sprintf("%c%02d:%02d", sign, m/60, m%60)
}
