package rates

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
)

// LoadCSV reads a daily rate history file into a Series.
//
// Expected columns: date,rate[,source[,confidence]] with an optional header
// row. Files ending in .xz are decompressed on the fly, which keeps multi
// year histories small on disk.
func LoadCSV(path string, pair Pair) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rates file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open xz stream %s: %w", path, err)
		}
		r = xr
	}

	return ReadCSV(r, pair)
}

// ReadCSV decodes a rate history from r. Split out from LoadCSV so the
// archive importer and tests can feed arbitrary readers.
func ReadCSV(r io.Reader, pair Pair) (*Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	var obs []Observation
	line := 0
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read rates csv: %w", err)
		}
		line++
		if len(row) == 0 {
			continue
		}
		if line == 1 && strings.EqualFold(strings.TrimSpace(row[0]), "date") {
			continue
		}

		o, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("rates csv line %d: %w", line, err)
		}
		obs = append(obs, o)
	}

	return NewSeries(pair, obs), nil
}

func parseRow(row []string) (Observation, error) {
	if len(row) < 2 {
		return Observation{}, fmt.Errorf("need at least date,rate columns, got %v", row)
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
	if err != nil {
		return Observation{}, fmt.Errorf("bad date %q: %w", row[0], err)
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
	if err != nil {
		return Observation{}, fmt.Errorf("bad rate %q: %w", row[1], err)
	}

	o := Observation{Date: date, Rate: rate, Source: "csv", Confidence: 1}
	if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
		o.Source = strings.TrimSpace(row[2])
	}
	if len(row) > 3 {
		conf, err := strconv.ParseFloat(strings.TrimSpace(row[3]), 64)
		if err != nil {
			return Observation{}, fmt.Errorf("bad confidence %q: %w", row[3], err)
		}
		o.Confidence = conf
	}

	if err := o.Validate(); err != nil {
		return Observation{}, err
	}
	return o, nil
}
