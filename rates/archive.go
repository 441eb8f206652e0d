package rates

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/unzip"
)

// ImportArchive extracts a zip bundle of rate history CSVs and loads every
// .csv / .csv.xz member into a single Series for the pair. Vendors ship
// multi-year histories this way, one file per year.
func ImportArchive(zipPath string, pair Pair) (*Series, error) {
	tmp, err := os.MkdirTemp("", "fxrisk-rates-*")
	if err != nil {
		return nil, fmt.Errorf("import archive: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := unzip.Extract(zipPath, tmp); err != nil {
		return nil, fmt.Errorf("extract %s: %w", zipPath, err)
	}

	var obs []Observation
	err = filepath.WalkDir(tmp, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := strings.ToLower(d.Name())
		if !strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ".csv.xz") {
			return nil
		}
		series, err := LoadCSV(path, pair)
		if err != nil {
			return fmt.Errorf("load %s: %w", d.Name(), err)
		}
		obs = append(obs, series.Observations()...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(obs) == 0 {
		return nil, fmt.Errorf("archive %s contains no rate files", zipPath)
	}
	return NewSeries(pair, obs), nil
}
