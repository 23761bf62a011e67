// Package yahoo fetches quote, statement and price-history data from the
// public Yahoo Finance JSON endpoints.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/phuslu/log"

	"github.com/komsit37/ratios/pkg/ratios/types"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	defaultTimeout   = 10 * time.Second
)

// Client talks to Yahoo Finance. The zero value is not usable; construct
// with NewClient.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

type Option func(*Client)

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithBaseURL points the client at an alternate host (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// QuarterlyBalanceSheet returns quarterly balance-sheet statements, most
// recent first, as reported by the balanceSheetHistoryQuarterly module.
func (c *Client) QuarterlyBalanceSheet(ctx context.Context, symbol string) ([]types.BalanceSheet, error) {
	res, err := c.quoteSummary(ctx, symbol, "balanceSheetHistoryQuarterly")
	if err != nil {
		return nil, err
	}
	if res.BalanceSheetHistoryQuarterly == nil {
		return nil, nil
	}
	out := make([]types.BalanceSheet, 0, len(res.BalanceSheetHistoryQuarterly.Statements))
	for _, st := range res.BalanceSheetHistoryQuarterly.Statements {
		out = append(out, types.BalanceSheet{
			EndDate:            unixDate(st.EndDate),
			TotalAssets:        st.TotalAssets.raw(),
			TotalLiabilities:   st.TotalLiab.raw(),
			CurrentAssets:      st.TotalCurrentAssets.raw(),
			CurrentLiabilities: st.TotalCurrentLiabilities.raw(),
			StockholderEquity:  st.TotalStockholderEquity.raw(),
		})
	}
	return out, nil
}

// QuarterlyIncome returns quarterly income statements, most recent first.
func (c *Client) QuarterlyIncome(ctx context.Context, symbol string) ([]types.IncomeStatement, error) {
	res, err := c.quoteSummary(ctx, symbol, "incomeStatementHistoryQuarterly")
	if err != nil {
		return nil, err
	}
	if res.IncomeStatementHistoryQuarterly == nil {
		return nil, nil
	}
	out := make([]types.IncomeStatement, 0, len(res.IncomeStatementHistoryQuarterly.Statements))
	for _, st := range res.IncomeStatementHistoryQuarterly.Statements {
		out = append(out, types.IncomeStatement{
			EndDate:      unixDate(st.EndDate),
			NetIncome:    st.NetIncome.raw(),
			TotalRevenue: st.TotalRevenue.raw(),
		})
	}
	return out, nil
}

// Summary returns the headline figure bag. Market cap prefers the price
// module and falls back to summaryDetail.
func (c *Client) Summary(ctx context.Context, symbol string) (types.Summary, error) {
	res, err := c.quoteSummary(ctx, symbol,
		"summaryDetail", "price", "defaultKeyStatistics", "financialData")
	if err != nil {
		return types.Summary{}, err
	}
	var s types.Summary
	if res.Price != nil {
		s.MarketCap = res.Price.MarketCap.raw()
	}
	if res.SummaryDetail != nil {
		if s.MarketCap == nil {
			s.MarketCap = res.SummaryDetail.MarketCap.raw()
		}
		s.TrailingPE = res.SummaryDetail.TrailingPE.raw()
	}
	if res.DefaultKeyStatistics != nil {
		s.SharesOutstanding = res.DefaultKeyStatistics.SharesOutstanding.raw()
	}
	if res.FinancialData != nil {
		s.TotalRevenue = res.FinancialData.TotalRevenue.raw()
	}
	return s, nil
}

// Dividends returns dividend events over the last ten years, oldest first.
func (c *Client) Dividends(ctx context.Context, symbol string) ([]types.Dividend, error) {
	res, err := c.chart(ctx, symbol, "10y", "1mo", true)
	if err != nil {
		return nil, err
	}
	out := make([]types.Dividend, 0, len(res.Events.Dividends))
	for _, d := range res.Events.Dividends {
		out = append(out, types.Dividend{
			Date:   time.Unix(d.Date, 0).UTC(),
			Amount: d.Amount,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// DailyHistory returns the most recent trading session's bar(s).
func (c *Client) DailyHistory(ctx context.Context, symbol string) ([]types.Bar, error) {
	res, err := c.chart(ctx, symbol, "1d", "1d", false)
	if err != nil {
		return nil, err
	}
	return bars(res), nil
}

// MonthlyHistory returns ten years of monthly bars, oldest first.
func (c *Client) MonthlyHistory(ctx context.Context, symbol string) ([]types.Bar, error) {
	res, err := c.chart(ctx, symbol, "10y", "1mo", false)
	if err != nil {
		return nil, err
	}
	return bars(res), nil
}

func (c *Client) chart(ctx context.Context, symbol, rng, interval string, events bool) (*chartResult, error) {
	q := url.Values{}
	q.Set("range", rng)
	q.Set("interval", interval)
	if events {
		q.Set("events", "div")
	}
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())

	var resp chartResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("chart %s: %s: %s", symbol, resp.Chart.Error.Code, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("chart %s: empty result", symbol)
	}
	return &resp.Chart.Result[0], nil
}

func (c *Client) quoteSummary(ctx context.Context, symbol string, modules ...string) (*quoteSummaryResult, error) {
	q := url.Values{}
	q.Set("modules", strings.Join(modules, ","))
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), q.Encode())

	var resp quoteSummaryResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary %s: %s: %s",
			symbol, resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quoteSummary %s: empty result", symbol)
	}
	return &resp.QuoteSummary.Result[0], nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	log.Debug().Str("url", u).Msg("yahoo request")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: status %d", u, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", u, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse %s: %w", u, err)
	}
	return nil
}

// bars converts a chart result to close-price bars, skipping sessions
// where Yahoo reported no close.
func bars(res *chartResult) []types.Bar {
	if len(res.Indicators.Quote) == 0 {
		return nil
	}
	closes := res.Indicators.Quote[0].Close
	out := make([]types.Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		out = append(out, types.Bar{
			Time:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	return out
}

func unixDate(v *value) time.Time {
	r := v.raw()
	if r == nil {
		return time.Time{}
	}
	return time.Unix(int64(*r), 0).UTC()
}
