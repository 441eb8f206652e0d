package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rustyeddy/fxrisk/analysis"
	"github.com/rustyeddy/fxrisk/contract"
	"github.com/rustyeddy/fxrisk/pkg/id"
	"github.com/rustyeddy/fxrisk/rates"
	"github.com/rustyeddy/fxrisk/report"
	"github.com/rustyeddy/fxrisk/risk"
	"github.com/rustyeddy/fxrisk/scenario"
)

// contractRequest is the contract block shared by both POST endpoints.
type contractRequest struct {
	ID            string  `json:"id"`
	Amount        float64 `json:"amount"`
	BaseCurrency  string  `json:"base_currency"`
	QuoteCurrency string  `json:"quote_currency"`
	ContractRate  float64 `json:"contract_rate"`
	IssueDate     string  `json:"issue_date"`
	MaturityDate  string  `json:"maturity_date"`
	Direction     string  `json:"direction"`

	// Optional interest-rate overrides, annualized decimals.
	BaseRate  *float64 `json:"base_rate,omitempty"`
	QuoteRate *float64 `json:"quote_rate,omitempty"`
}

type scenarioRequest struct {
	contractRequest
	Shocks     []float64 `json:"shocks"`
	Confidence float64   `json:"confidence,omitempty"`
}

const dateFmt = "2006-01-02"

// valuation parses and validates the request into a contract. Date parse
// failures surface as ConfigurationError so the handler maps them to 400.
func (r *contractRequest) valuation() (contract.Valuation, error) {
	issue, err := time.Parse(dateFmt, r.IssueDate)
	if err != nil {
		return contract.Valuation{}, &contract.ConfigurationError{
			Field: "issue_date", Msg: "want YYYY-MM-DD"}
	}
	maturity, err := time.Parse(dateFmt, r.MaturityDate)
	if err != nil {
		return contract.Valuation{}, &contract.ConfigurationError{
			Field: "maturity_date", Msg: "want YYYY-MM-DD"}
	}

	cid := r.ID
	if cid == "" {
		cid = id.New()
	}
	return contract.New(cid, r.Amount, r.BaseCurrency, r.QuoteCurrency,
		r.ContractRate, issue, maturity, contract.Direction(r.Direction))
}

// params merges per-request rate overrides onto the server defaults.
func (s *Server) requestParams(r *contractRequest, confidence float64) analysis.Params {
	p := s.params
	if r.BaseRate != nil {
		p.Rates.Base = *r.BaseRate
	}
	if r.QuoteRate != nil {
		p.Rates.Quote = *r.QuoteRate
	}
	p.Confidence = confidence
	return p
}

// series materializes the spot observations covering the contract window.
func (s *Server) series(c *gin.Context, v contract.Valuation) (*rates.Series, error) {
	pair := rates.NewPair(v.BaseCurrency, v.QuoteCur)
	return s.provider.Range(c.Request.Context(), pair, v.IssueDate, v.MaturityDate)
}

// runStatus maps pipeline failures to HTTP status codes: bad parameters
// are the client's fault, missing data is unprocessable, the rest is ours.
func runStatus(err error) int {
	var cfgErr *contract.ConfigurationError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest
	case errors.Is(err, risk.ErrInsufficientData), errors.Is(err, rates.ErrUnavailable):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleAnalyze(c *gin.Context) {
	var req contractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	v, err := req.valuation()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, err := s.series(c, v)
	if err != nil {
		s.log.WithError(err).Warn("rate range lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "rates unavailable: " + err.Error()})
		return
	}

	result, err := analysis.Run(c.Request.Context(), v, series, s.requestParams(&req, 0))
	if err != nil {
		c.JSON(runStatus(err), gin.H{"error": err.Error()})
		return
	}

	s.log.WithFields(map[string]interface{}{
		"contract": v.ID,
		"days":     result.Summary.DataPoints,
		"impact":   result.Impact,
	}).Info("analysis complete")

	c.JSON(http.StatusOK, report.Build(result, nil))
}

func (s *Server) handleScenarios(c *gin.Context) {
	var req scenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}
	if len(req.Shocks) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one shock is required"})
		return
	}
	if req.Confidence < 0 || req.Confidence >= 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "confidence must be in [0, 1)"})
		return
	}

	v, err := req.valuation()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	series, err := s.series(c, v)
	if err != nil {
		s.log.WithError(err).Warn("rate range lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "rates unavailable: " + err.Error()})
		return
	}

	p := s.requestParams(&req.contractRequest, req.Confidence)

	// The scenario report wraps the unshocked baseline run.
	base, err := analysis.Run(c.Request.Context(), v, series, p)
	if err != nil {
		c.JSON(runStatus(err), gin.H{"error": err.Error()})
		return
	}

	outcomes := scenario.Run(c.Request.Context(), v, series, req.Shocks, p)

	s.log.WithFields(map[string]interface{}{
		"contract": v.ID,
		"shocks":   len(req.Shocks),
	}).Info("scenario analysis complete")

	c.JSON(http.StatusOK, report.Build(base, outcomes))
}
