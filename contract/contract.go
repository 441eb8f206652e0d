// Package contract defines the letter-of-credit terms the analytics
// pipeline operates on. A Valuation is validated once at construction and
// never mutated afterwards.
package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxrisk/calendar"
)

// Direction says which side of the currency exposure the holder sits on.
type Direction string

const (
	// Export holders are paid in the quote currency: they gain when the
	// quote currency strengthens past the contract rate.
	Export Direction = "export"
	// Import holders owe in the quote currency: they gain when it weakens.
	Import Direction = "import"
)

// Sign returns +1 for export exposure and -1 for import exposure.
func (d Direction) Sign() float64 {
	if d == Import {
		return -1
	}
	return 1
}

// ConfigurationError reports invalid contract terms. It is raised before
// any rate lookup or computation happens, and only fails the one contract
// (or scenario) it describes.
type ConfigurationError struct {
	Field string
	Msg   string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("contract: invalid %s: %s", e.Field, e.Msg)
}

// Valuation is the immutable description of a fixed-rate LC.
//
// Amount is the notional in the base currency; ContractRate is quoted as
// quote-per-base (e.g. INR per USD).
type Valuation struct {
	ID           string
	Amount       float64
	BaseCurrency string
	QuoteCur     string
	ContractRate float64
	IssueDate    time.Time
	MaturityDate time.Time
	Direction    Direction
}

// New validates the LC terms and returns a Valuation. Dates are truncated
// to midnight UTC so daily lookups compare cleanly.
func New(id string, amount float64, base, quote string, rate float64,
	issue, maturity time.Time, dir Direction) (Valuation, error) {

	base = strings.ToUpper(strings.TrimSpace(base))
	quote = strings.ToUpper(strings.TrimSpace(quote))
	issue = calendar.Midnight(issue)
	maturity = calendar.Midnight(maturity)

	if amount <= 0 {
		return Valuation{}, &ConfigurationError{"amount", "must be positive"}
	}
	if rate <= 0 {
		return Valuation{}, &ConfigurationError{"contract_rate", "must be positive"}
	}
	if base == "" || quote == "" {
		return Valuation{}, &ConfigurationError{"currency", "base and quote currencies are required"}
	}
	if base == quote {
		return Valuation{}, &ConfigurationError{"currency", "base and quote must differ"}
	}
	if maturity.Before(issue) {
		return Valuation{}, &ConfigurationError{"maturity_date",
			fmt.Sprintf("must not precede issue date %s", issue.Format("2006-01-02"))}
	}
	switch dir {
	case Import, Export:
	default:
		return Valuation{}, &ConfigurationError{"direction",
			fmt.Sprintf("must be %q or %q", Import, Export)}
	}

	return Valuation{
		ID:           id,
		Amount:       amount,
		BaseCurrency: base,
		QuoteCur:     quote,
		ContractRate: rate,
		IssueDate:    issue,
		MaturityDate: maturity,
		Direction:    dir,
	}, nil
}

// MaturityDays is the calendar-day tenor of the contract.
func (v Valuation) MaturityDays() int {
	return int(v.MaturityDate.Sub(v.IssueDate).Hours() / 24)
}

// NotionalQuote is the contract value expressed in the quote currency at
// the fixed contract rate. P&L percentages are relative to this figure.
func (v Valuation) NotionalQuote() float64 {
	return v.Amount * v.ContractRate
}
