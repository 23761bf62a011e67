package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/ratios/pkg/ratios/types"
)

type fakeData struct {
	sheets  []types.BalanceSheet
	income  []types.IncomeStatement
	summary types.Summary
	divs    []types.Dividend
	daily   []types.Bar
	monthly []types.Bar

	err        error // returned by every fetch except MonthlyHistory
	monthlyErr error
}

type fakeProvider map[string]*fakeData

func (p fakeProvider) data(sym string) (*fakeData, error) {
	d, ok := p[sym]
	if !ok {
		return nil, errors.New("unknown symbol")
	}
	return d, d.err
}

func (p fakeProvider) QuarterlyBalanceSheet(_ context.Context, sym string) ([]types.BalanceSheet, error) {
	d, err := p.data(sym)
	if err != nil {
		return nil, err
	}
	return d.sheets, nil
}

func (p fakeProvider) QuarterlyIncome(_ context.Context, sym string) ([]types.IncomeStatement, error) {
	d, err := p.data(sym)
	if err != nil {
		return nil, err
	}
	return d.income, nil
}

func (p fakeProvider) Summary(_ context.Context, sym string) (types.Summary, error) {
	d, err := p.data(sym)
	if err != nil {
		return types.Summary{}, err
	}
	return d.summary, nil
}

func (p fakeProvider) Dividends(_ context.Context, sym string) ([]types.Dividend, error) {
	d, err := p.data(sym)
	if err != nil {
		return nil, err
	}
	return d.divs, nil
}

func (p fakeProvider) DailyHistory(_ context.Context, sym string) ([]types.Bar, error) {
	d, err := p.data(sym)
	if err != nil {
		return nil, err
	}
	return d.daily, nil
}

func (p fakeProvider) MonthlyHistory(_ context.Context, sym string) ([]types.Bar, error) {
	d, err := p.data(sym)
	if err != nil {
		return nil, err
	}
	if d.monthlyErr != nil {
		return nil, d.monthlyErr
	}
	return d.monthly, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// completeData returns a fixture with every upstream field populated.
func completeData() *fakeData {
	return &fakeData{
		sheets: []types.BalanceSheet{
			{
				EndDate:            day(2023, 12, 31),
				TotalAssets:        types.Float(400e9),
				TotalLiabilities:   types.Float(120e9),
				CurrentAssets:      types.Float(90e9),
				CurrentLiabilities: types.Float(70e9),
				StockholderEquity:  types.Float(280e9),
			},
			{
				EndDate:           day(2023, 9, 30),
				StockholderEquity: types.Float(272e9),
			},
		},
		income: []types.IncomeStatement{
			{EndDate: day(2023, 12, 31), NetIncome: types.Float(25e9)},
		},
		summary: types.Summary{
			MarketCap:         types.Float(1.75e12),
			TotalRevenue:      types.Float(300e9),
			SharesOutstanding: types.Float(12.5e9),
			TrailingPE:        types.Float(24.5),
		},
		divs: []types.Dividend{
			{Date: day(2022, 11, 10), Amount: 0.18},
			{Date: day(2023, 2, 10), Amount: 0.2},
			{Date: day(2023, 8, 10), Amount: 0.22},
		},
		daily: []types.Bar{{Time: day(2024, 1, 5), Close: 150}},
		monthly: []types.Bar{
			{Time: day(2021, 3, 1), Close: 100},
			{Time: day(2021, 9, 1), Close: 110},
			{Time: day(2022, 3, 1), Close: 120},
			{Time: day(2022, 9, 1), Close: 130},
			{Time: day(2023, 3, 1), Close: 140},
			{Time: day(2023, 6, 1), Close: 150},
			{Time: day(2023, 9, 1), Close: 160},
		},
	}
}

func runOne(t *testing.T, p fakeProvider, ticker string) types.Snapshot {
	t.Helper()
	e := &Extractor{Provider: p, Year: 2023}
	snaps := e.Run(context.Background(), []string{ticker})
	require.Len(t, snaps, 1)
	return snaps[0]
}

func TestCompleteDataFormulas(t *testing.T) {
	s := runOne(t, fakeProvider{"AAPL": completeData()}, "AAPL")

	checks := []struct {
		name string
		got  *float64
		want float64
	}{
		{"equity", s.Equity, 280e9},
		{"avg equity", s.AvgEquity, 276e9},
		{"eps", s.EPS, 2.0},
		{"current ratio", s.CurrentRatio, 90.0 / 70.0},
		{"debt to assets", s.DebtToAssets, 0.3},
		{"debt to equity", s.DebtToEquity, 120.0 / 280.0},
		{"dividend yield", s.DividendYield, 0.42 / 150.0},
		{"roa", s.ROA, 25e9 / 400e9},
		{"roe", s.ROE, 25e9 / 276e9},
		{"price to sales", s.PriceToSales, 1.75e12 / 300e9},
		{"price to earnings", s.PriceToEarnings, 70.0},
		{"trailing pe", s.TrailingPE, 24.5},
		// yearly mean closes 105, 125, 150 over EPS 2 -> mean of 52.5, 62.5, 75
		{"ten year avg pe", s.TenYearAvgPE, (52.5 + 62.5 + 75.0) / 3.0},
	}
	for _, c := range checks {
		require.NotNil(t, c.got, c.name)
		assert.InDelta(t, c.want, *c.got, 1e-9, c.name)
	}
	require.NotNil(t, s.Close)
	assert.Equal(t, 150.0, *s.Close)
	assert.InDelta(t, 0.42, s.AnnualDividends, 1e-12)
}

func TestFailingTickerOmitted(t *testing.T) {
	p := fakeProvider{
		"AAPL":  completeData(),
		"OTHER": completeData(),
	}
	p["BADTICKER"] = &fakeData{err: errors.New("connection reset")}

	e := &Extractor{Provider: p, Year: 2023}
	snaps := e.Run(context.Background(), []string{"AAPL", "BADTICKER", "OTHER"})

	require.Len(t, snaps, 2)
	assert.Equal(t, "AAPL", snaps[0].Ticker)
	assert.Equal(t, "OTHER", snaps[1].Ticker)
}

func TestMissingBalanceSheetRows(t *testing.T) {
	d := completeData()
	d.sheets = []types.BalanceSheet{{
		EndDate:     day(2023, 12, 31),
		TotalAssets: types.Float(400e9),
		// liabilities and current rows absent
	}}
	s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")

	assert.Nil(t, s.Equity)
	assert.Nil(t, s.CurrentRatio)
	assert.Nil(t, s.DebtToAssets)
	assert.Nil(t, s.DebtToEquity)
	assert.Nil(t, s.AvgEquity)
	assert.Nil(t, s.ROE)
	// ROA still computes from net income and total assets
	require.NotNil(t, s.ROA)
	assert.InDelta(t, 25e9/400e9, *s.ROA, 1e-12)
}

func TestEmptyBalanceSheet(t *testing.T) {
	d := completeData()
	d.sheets = nil
	s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")

	assert.Nil(t, s.TotalAssets)
	assert.Nil(t, s.Equity)
	assert.Nil(t, s.CurrentRatio)
	assert.Nil(t, s.ROA)
}

func TestDividendYearFilter(t *testing.T) {
	t.Run("only target year summed", func(t *testing.T) {
		s := runOne(t, fakeProvider{"AAPL": completeData()}, "AAPL")
		assert.InDelta(t, 0.42, s.AnnualDividends, 1e-12)
	})

	t.Run("no events in target year is zero, yield nil", func(t *testing.T) {
		d := completeData()
		d.divs = []types.Dividend{{Date: day(2019, 5, 1), Amount: 1.5}}
		s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")
		assert.Equal(t, 0.0, s.AnnualDividends)
		assert.Nil(t, s.DividendYield)
	})

	t.Run("no events at all is zero", func(t *testing.T) {
		d := completeData()
		d.divs = nil
		s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")
		assert.Equal(t, 0.0, s.AnnualDividends)
		assert.Nil(t, s.DividendYield)
	})
}

func TestAvgEquityQuarterCount(t *testing.T) {
	equity := func(vs ...float64) []types.BalanceSheet {
		sheets := make([]types.BalanceSheet, len(vs))
		for i, v := range vs {
			sheets[i] = types.BalanceSheet{StockholderEquity: types.Float(v)}
		}
		return sheets
	}

	tests := []struct {
		name   string
		sheets []types.BalanceSheet
		want   *float64
	}{
		{name: "no quarters", sheets: nil, want: nil},
		{name: "one quarter", sheets: equity(280e9), want: nil},
		{name: "two quarters", sheets: equity(280e9, 272e9), want: types.Float(276e9)},
		{name: "four quarters uses two most recent", sheets: equity(280e9, 272e9, 250e9, 240e9), want: types.Float(276e9)},
		{
			name: "nil equity rows are skipped",
			sheets: append([]types.BalanceSheet{{}},
				equity(280e9, 272e9)...),
			want: types.Float(276e9),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := avgEquity(tt.sheets)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-3)
		})
	}
}

func TestTenYearAvgPEDegradesToNil(t *testing.T) {
	t.Run("missing eps", func(t *testing.T) {
		d := completeData()
		d.summary.SharesOutstanding = nil // no EPS -> no historical P/E
		s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")
		assert.Nil(t, s.EPS)
		assert.Nil(t, s.TenYearAvgPE)
		// rest of the record is intact
		require.NotNil(t, s.CurrentRatio)
	})

	t.Run("history fetch failure does not abort ticker", func(t *testing.T) {
		d := completeData()
		d.monthlyErr = errors.New("timeout")
		s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")
		assert.Nil(t, s.TenYearAvgPE)
		require.NotNil(t, s.PriceToEarnings)
	})

	t.Run("empty history", func(t *testing.T) {
		d := completeData()
		d.monthly = nil
		s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")
		assert.Nil(t, s.TenYearAvgPE)
	})
}

func TestTenYearAvgPECapsAtTenYears(t *testing.T) {
	d := completeData()
	d.monthly = nil
	for y := 2010; y <= 2023; y++ { // 14 years, mean close == 10*(y-2009)
		d.monthly = append(d.monthly, types.Bar{
			Time: day(y, 6, 1), Close: float64(10 * (y - 2009)),
		})
	}
	s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")

	// last ten yearly means are 50..140 step 10, mean 95; EPS is 2
	require.NotNil(t, s.TenYearAvgPE)
	assert.InDelta(t, 95.0/2.0, *s.TenYearAvgPE, 1e-9)
}

func TestZeroOperandsYieldNilRatios(t *testing.T) {
	d := completeData()
	d.sheets[0].CurrentLiabilities = types.Float(0)
	d.income[0].NetIncome = types.Float(0)
	s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")

	assert.Nil(t, s.CurrentRatio)
	assert.Nil(t, s.ROA)
	assert.Nil(t, s.ROE)
	assert.Nil(t, s.PriceToEarnings)
	assert.Nil(t, s.EPS)
}

func TestEmptyDailyHistory(t *testing.T) {
	d := completeData()
	d.daily = nil
	s := runOne(t, fakeProvider{"AAPL": d}, "AAPL")

	assert.Nil(t, s.Close)
	assert.Nil(t, s.DividendYield)
}
