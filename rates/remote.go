package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL points at the public frankfurter.dev historical-rates API.
const DefaultBaseURL = "https://api.frankfurter.dev/v1"

// Client fetches daily spot rates from an HTTP market-data API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Entry
}

// NewClient builds a Client for the given API base URL, falling back to
// DefaultBaseURL when empty.
func NewClient(baseURL string, log *logrus.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log.WithField("component", "rates.client"),
	}
}

// dayResponse mirrors the frankfurter JSON shape:
// {"base":"USD","date":"2025-06-02","rates":{"INR":85.41}}
type dayResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Spot implements Source. A 404 (or a response missing the quote currency)
// maps to ErrUnavailable so the curve generator can carry forward.
func (c *Client) Spot(ctx context.Context, pair Pair, date time.Time) (Observation, error) {
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, date.UTC().Format("2006-01-02"),
		url.Values{"base": {pair.Base}, "symbols": {pair.Quote}}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Observation{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Observation{}, fmt.Errorf("fetch spot rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Observation{}, ErrUnavailable
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Observation{}, fmt.Errorf("fetch spot rate: status %d: %s", resp.StatusCode, body)
	}

	var dr dayResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return Observation{}, fmt.Errorf("decode spot response: %w", err)
	}

	rate, ok := dr.Rates[pair.Quote]
	if !ok || rate <= 0 {
		return Observation{}, ErrUnavailable
	}

	// Providers answer weekend/holiday requests with the previous fixing;
	// keep their date, rate it slightly below a same-day quote.
	conf := 1.0
	if dr.Date != date.UTC().Format("2006-01-02") {
		conf = 0.9
	}

	c.log.WithFields(logrus.Fields{
		"pair": pair.Slash(),
		"date": dr.Date,
		"rate": rate,
	}).Debug("fetched spot observation")

	return Observation{Date: date, Rate: rate, Source: "remote", Confidence: conf}, nil
}

// Range pulls every observation in [from, to] into a Series. Dates the
// provider cannot serve are skipped; the caller decides whether the gaps
// matter.
func (c *Client) Range(ctx context.Context, pair Pair, from, to time.Time) (*Series, error) {
	var obs []Observation
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		o, err := c.Spot(ctx, pair, d)
		if err != nil {
			if errors.Is(err, ErrUnavailable) {
				continue
			}
			return nil, err
		}
		obs = append(obs, o)
	}
	return NewSeries(pair, obs), nil
}
