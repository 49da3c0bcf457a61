// Command tzdiff compares the rule tables of two zones segment by segment.
// Each zone comes from a TZif file or a moment-timezone bundle:
//
//	tzdiff [-from year] [-to year] <source A> <source B>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/ngrash/go-moment/internal/zonesrc"
	"github.com/ngrash/go-moment/tz"
)

var (
	fromFlag = flag.Int("from", 1970, "first year to compare")
	toFlag   = flag.Int("to", tz.FooterHorizon, "last year to compare")
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(logger); err != nil {
		logger.Error("tzdiff failed", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	flag.Parse()
	args := flag.Args()
	if len(args) != 2 {
		return fmt.Errorf("usage: tzdiff [flags] <source A> <source B>")
	}

	a, err := zonesrc.Open(args[0], logger)
	if err != nil {
		return err
	}
	b, err := zonesrc.Open(args[1], logger)
	if err != nil {
		return err
	}

	// TZif files expand footer rules up to a horizon while bundles stop at
	// their last transition, so both are cut to the same years first.
	as := tz.FilterYears(a, *fromFlag, *toFlag).Segments()
	bs := tz.FilterYears(b, *fromFlag, *toFlag).Segments()
	if diff := cmp.Diff(as, bs); diff != "" {
		fmt.Println("zones are different: -A +B")
		fmt.Println(diff)
	} else {
		fmt.Println("zones are identical")
	}
	return nil
}
