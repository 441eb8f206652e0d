// Package report renders analysis results into the JSON and CSV documents
// downstream consumers (dashboards, spreadsheets) ingest. The engine never
// persists anything; reports are snapshots rendered on demand.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/fxrisk/analysis"
	"github.com/rustyeddy/fxrisk/pkg/id"
	"github.com/rustyeddy/fxrisk/scenario"
)

// Document is the wire form of one analysis run.
type Document struct {
	RunID       string     `json:"run_id"`
	GeneratedAt time.Time  `json:"generated_at"`
	Contract    Contract   `json:"contract"`
	Summary     string     `json:"executive_summary"`
	Risk        Risk       `json:"risk"`
	Meta        Meta       `json:"meta"`
	Daily       []Daily    `json:"daily_pl"`
	Scenarios   []Scenario `json:"scenarios,omitempty"`
}

// Contract echoes the analyzed terms.
type Contract struct {
	ID           string  `json:"id"`
	Amount       float64 `json:"amount"`
	Pair         string  `json:"pair"`
	ContractRate float64 `json:"contract_rate"`
	IssueDate    string  `json:"issue_date"`
	MaturityDate string  `json:"maturity_date"`
	Direction    string  `json:"direction"`
}

// Risk is the aggregate picture.
type Risk struct {
	MaxProfit     float64 `json:"max_profit"`
	MaxProfitDate string  `json:"max_profit_date"`
	MaxLoss       float64 `json:"max_loss"`
	MaxLossDate   string  `json:"max_loss_date"`
	Volatility    float64 `json:"volatility"`
	ValueAtRisk   float64 `json:"value_at_risk"`
	Confidence    float64 `json:"confidence"`
	ProfitDays    int     `json:"profit_days"`
	LossDays      int     `json:"loss_days"`
	DataPoints    int     `json:"data_points"`
	Impact        string  `json:"impact"`
}

// Meta reports curve completeness.
type Meta struct {
	RequestedDays  int      `json:"requested_days"`
	CarriedForward int      `json:"carried_forward"`
	DroppedDates   []string `json:"dropped_dates,omitempty"`
}

// Daily is one row of the P&L series.
type Daily struct {
	Date          string  `json:"date"`
	DaysRemaining int     `json:"days_remaining"`
	SpotRate      float64 `json:"spot_rate"`
	ForwardRate   float64 `json:"forward_rate"`
	CloseOutPL    float64 `json:"close_out_pl"`
	ExpectedPL    float64 `json:"expected_pl"`
	PLPercent     float64 `json:"pl_percentage"`
}

// Scenario is one shock outcome.
type Scenario struct {
	Shock          float64 `json:"shock"`
	Impact         string  `json:"impact,omitempty"`
	FinalPLPercent float64 `json:"final_pl_percentage"`
	MaxProfit      float64 `json:"max_profit"`
	MaxLoss        float64 `json:"max_loss"`
	ValueAtRisk    float64 `json:"value_at_risk"`
	Error          string  `json:"error,omitempty"`
}

const dateFmt = "2006-01-02"

// Build assembles a Document from a pipeline result and optional scenario
// outcomes.
func Build(result *analysis.Result, outcomes []scenario.Outcome) *Document {
	now := time.Now().UTC()
	v := result.Contract

	doc := &Document{
		RunID:       id.NewAt(now),
		GeneratedAt: now,
		Contract: Contract{
			ID:           v.ID,
			Amount:       v.Amount,
			Pair:         v.BaseCurrency + "/" + v.QuoteCur,
			ContractRate: v.ContractRate,
			IssueDate:    v.IssueDate.Format(dateFmt),
			MaturityDate: v.MaturityDate.Format(dateFmt),
			Direction:    string(v.Direction),
		},
		Risk: Risk{
			MaxProfit:     result.Summary.MaxProfit.Value,
			MaxProfitDate: result.Summary.MaxProfit.Date.Format(dateFmt),
			MaxLoss:       result.Summary.MaxLoss.Value,
			MaxLossDate:   result.Summary.MaxLoss.Date.Format(dateFmt),
			Volatility:    result.Summary.Volatility,
			ValueAtRisk:   result.Summary.ValueAtRisk,
			Confidence:    result.Summary.Confidence,
			ProfitDays:    result.Summary.ProfitDays,
			LossDays:      result.Summary.LossDays,
			DataPoints:    result.Summary.DataPoints,
			Impact:        string(result.Impact),
		},
		Meta: Meta{
			RequestedDays:  result.Meta.RequestedDays,
			CarriedForward: result.Meta.CarriedForward,
		},
	}

	for _, d := range result.Meta.DroppedDates {
		doc.Meta.DroppedDates = append(doc.Meta.DroppedDates, d.Format(dateFmt))
	}

	for _, r := range result.Records {
		doc.Daily = append(doc.Daily, Daily{
			Date:          r.Date.Format(dateFmt),
			DaysRemaining: r.DaysRemaining,
			SpotRate:      r.SpotRate,
			ForwardRate:   r.ForwardRate,
			CloseOutPL:    r.CloseOutPL,
			ExpectedPL:    r.ExpectedPL,
			PLPercent:     r.PLPercent,
		})
	}

	for _, o := range outcomes {
		s := Scenario{Shock: o.Shock, FinalPLPercent: o.FinalPLPercent}
		if o.Err != nil {
			s.Error = o.Err.Error()
		} else {
			s.Impact = string(o.Impact)
			s.MaxProfit = o.Summary.MaxProfit.Value
			s.MaxLoss = o.Summary.MaxLoss.Value
			s.ValueAtRisk = o.Summary.ValueAtRisk
		}
		doc.Scenarios = append(doc.Scenarios, s)
	}

	doc.Summary = executiveSummary(doc)
	return doc
}

func executiveSummary(doc *Document) string {
	if len(doc.Daily) == 0 {
		return fmt.Sprintf("%s contract %s on %s has no daily P&L data",
			doc.Contract.Direction, doc.Contract.ID, doc.Contract.Pair)
	}
	last := doc.Daily[len(doc.Daily)-1]
	verb := "profit"
	pl := last.CloseOutPL
	if pl < 0 {
		verb = "loss"
		pl = -pl
	}
	return fmt.Sprintf("%s contract %s on %s for %.2f closes with a %s of %.2f (%.2f%% of notional, %s impact)",
		doc.Contract.Direction, doc.Contract.ID, doc.Contract.Pair, doc.Contract.Amount,
		verb, pl, last.PLPercent, doc.Risk.Impact)
}

// WriteJSON renders the document as indented JSON.
func (d *Document) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
