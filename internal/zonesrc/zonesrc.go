// Package zonesrc loads zones from files named on a command line.
//
// A source is either the path of a TZif file, such as
// /usr/share/zoneinfo/Europe/Vilnius, or the path of a moment-timezone
// bundle followed by '#' and a zone name, such as data.json.zst#Europe/Vilnius.
package zonesrc

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ngrash/go-moment/tz"
)

// Open loads the zone named by src.
func Open(src string, logger *slog.Logger) (*tz.Zone, error) {
	path, name, inBundle := strings.Cut(src, "#")
	if !inBundle {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		z, err := tz.DecodeTZif(ZoneName(path), f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return z, nil
	}

	reg, err := Registry(path, logger)
	if err != nil {
		return nil, err
	}
	z, ok := reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("%s: no zone %q", path, name)
	}
	return z, nil
}

// Registry reads the bundle at path into a new registry. Broken entries
// are logged and skipped.
func Registry(path string, logger *slog.Logger) (*tz.Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	b, err := tz.ReadBundle(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	reg := &tz.Registry{Logger: logger}
	if err := reg.Load(b); err != nil {
		logger.Warn("skipped broken bundle entries", "bundle", path, "err", err)
	}
	return reg, nil
}

// ZoneName derives a zone name from the path of a TZif file: the part
// after a "zoneinfo" directory if there is one, else the file name.
func ZoneName(path string) string {
	path = filepath.ToSlash(path)
	if _, rest, ok := strings.Cut(path, "zoneinfo/"); ok && rest != "" {
		return rest
	}
	return filepath.Base(path)
}
