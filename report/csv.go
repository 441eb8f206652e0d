package report

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteDailyCSV writes the daily P&L rows as CSV with a header row.
func (d *Document) WriteDailyCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{
		"date", "days_remaining", "spot_rate", "forward_rate",
		"close_out_pl", "expected_pl", "pl_percentage",
	}); err != nil {
		return err
	}

	for _, row := range d.Daily {
		if err := cw.Write([]string{
			row.Date,
			strconv.Itoa(row.DaysRemaining),
			f(row.SpotRate),
			f(row.ForwardRate),
			f(row.CloseOutPL),
			f(row.ExpectedPL),
			f(row.PLPercent),
		}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
