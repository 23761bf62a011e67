// Package extract runs the per-ticker fetch-and-compute pass that turns
// provider data into ratio snapshots.
package extract

import (
	"context"
	"sort"

	"github.com/phuslu/log"

	"github.com/komsit37/ratios/pkg/ratios/types"
)

// Provider supplies per-symbol market data. All methods block until the
// upstream responds; cancellation is via ctx.
type Provider interface {
	QuarterlyBalanceSheet(ctx context.Context, symbol string) ([]types.BalanceSheet, error)
	QuarterlyIncome(ctx context.Context, symbol string) ([]types.IncomeStatement, error)
	Summary(ctx context.Context, symbol string) (types.Summary, error)
	Dividends(ctx context.Context, symbol string) ([]types.Dividend, error)
	DailyHistory(ctx context.Context, symbol string) ([]types.Bar, error)
	MonthlyHistory(ctx context.Context, symbol string) ([]types.Bar, error)
}

// Extractor computes one Snapshot per ticker. Year selects the calendar
// year whose dividend payments are summed into AnnualDividends.
type Extractor struct {
	Provider Provider
	Year     int
}

// Run processes tickers sequentially in input order. A ticker whose fetch
// fails is logged and omitted; the rest of the batch is unaffected.
func (e *Extractor) Run(ctx context.Context, tickers []string) []types.Snapshot {
	out := make([]types.Snapshot, 0, len(tickers))
	for _, t := range tickers {
		snap, err := e.snapshot(ctx, t)
		if err != nil {
			log.Error().Str("ticker", t).Err(err).Msg("skipping ticker")
			continue
		}
		out = append(out, snap)
	}
	return out
}

func (e *Extractor) snapshot(ctx context.Context, ticker string) (types.Snapshot, error) {
	s := types.Snapshot{Ticker: ticker}

	sheets, err := e.Provider.QuarterlyBalanceSheet(ctx, ticker)
	if err != nil {
		return s, err
	}
	if len(sheets) > 0 {
		s.CurrentAssets = sheets[0].CurrentAssets
		s.CurrentLiabilities = sheets[0].CurrentLiabilities
		s.TotalLiabilities = sheets[0].TotalLiabilities
		s.TotalAssets = sheets[0].TotalAssets
	}
	s.Equity = types.Sub(s.TotalAssets, s.TotalLiabilities)
	s.AvgEquity = avgEquity(sheets)

	divs, err := e.Provider.Dividends(ctx, ticker)
	if err != nil {
		return s, err
	}
	s.AnnualDividends = sumYear(divs, e.Year)

	daily, err := e.Provider.DailyHistory(ctx, ticker)
	if err != nil {
		return s, err
	}
	if len(daily) > 0 {
		s.Close = types.Float(daily[len(daily)-1].Close)
	}

	sum, err := e.Provider.Summary(ctx, ticker)
	if err != nil {
		return s, err
	}
	s.MarketCap = sum.MarketCap
	s.Revenue = sum.TotalRevenue
	s.SharesOutstanding = sum.SharesOutstanding
	s.TrailingPE = sum.TrailingPE

	income, err := e.Provider.QuarterlyIncome(ctx, ticker)
	if err != nil {
		return s, err
	}
	if len(income) > 0 {
		s.NetIncome = income[0].NetIncome
	}
	s.EPS = types.Div(s.NetIncome, s.SharesOutstanding)

	s.TenYearAvgPE = e.tenYearAvgPE(ctx, ticker, s.EPS)

	s.CurrentRatio = types.Div(s.CurrentAssets, s.CurrentLiabilities)
	s.DebtToAssets = types.Div(s.TotalLiabilities, s.TotalAssets)
	s.DebtToEquity = types.Div(s.TotalLiabilities, s.Equity)
	s.DividendYield = types.Div(types.Float(s.AnnualDividends), s.Close)
	s.ROA = types.Div(s.NetIncome, s.TotalAssets)
	s.ROE = types.Div(s.NetIncome, s.AvgEquity)
	s.PriceToSales = types.Div(s.MarketCap, s.Revenue)
	s.PriceToEarnings = types.Div(s.MarketCap, s.NetIncome)

	return s, nil
}

// tenYearAvgPE averages price-to-earnings across the last ten calendar
// years of monthly closes: each year's mean close divided by the single
// most recent quarterly EPS. Note this reuses the current EPS for every
// historical year, so years with different earnings are misstated.
// Any failure degrades to nil for this field only.
func (e *Extractor) tenYearAvgPE(ctx context.Context, ticker string, eps *float64) *float64 {
	if eps == nil || *eps == 0 {
		log.Warn().Str("ticker", ticker).Msg("ten-year avg P/E: no EPS")
		return nil
	}
	monthly, err := e.Provider.MonthlyHistory(ctx, ticker)
	if err != nil {
		log.Warn().Str("ticker", ticker).Err(err).Msg("ten-year avg P/E: history fetch failed")
		return nil
	}
	means := yearlyMeanCloses(monthly)
	if len(means) > 10 {
		means = means[len(means)-10:]
	}
	if len(means) == 0 {
		log.Warn().Str("ticker", ticker).Msg("ten-year avg P/E: no price history")
		return nil
	}
	pes := make([]float64, len(means))
	for i, m := range means {
		pes[i] = m / *eps
	}
	return types.Mean(pes)
}

// yearlyMeanCloses resamples bars to one mean close per calendar year,
// ordered oldest first.
func yearlyMeanCloses(bars []types.Bar) []float64 {
	sums := map[int]float64{}
	counts := map[int]int{}
	for _, b := range bars {
		y := b.Time.Year()
		sums[y] += b.Close
		counts[y]++
	}
	years := make([]int, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Ints(years)
	out := make([]float64, 0, len(years))
	for _, y := range years {
		out = append(out, sums[y]/float64(counts[y]))
	}
	return out
}

// avgEquity averages the two most recent quarterly stockholder-equity
// figures; fewer than two reported figures yields nil.
func avgEquity(sheets []types.BalanceSheet) *float64 {
	vals := make([]float64, 0, 2)
	for _, sh := range sheets {
		if sh.StockholderEquity == nil {
			continue
		}
		vals = append(vals, *sh.StockholderEquity)
		if len(vals) == 2 {
			break
		}
	}
	if len(vals) < 2 {
		return nil
	}
	return types.Float((vals[0] + vals[1]) / 2)
}

// sumYear totals dividend amounts paid in the given calendar year. No
// events for that year is a zero total, not an absence.
func sumYear(divs []types.Dividend, year int) float64 {
	var sum float64
	for _, d := range divs {
		if d.Date.Year() == year {
			sum += d.Amount
		}
	}
	return sum
}
