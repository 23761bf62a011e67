package types

import "time"

// Snapshot is the record produced for one ticker: the raw figures pulled
// from the provider plus the derived ratios. Any field may be absent
// upstream, so everything numeric except AnnualDividends is a pointer;
// nil means the provider did not report it (or a ratio's operand was
// missing), never zero.
type Snapshot struct {
	Ticker string `json:"ticker"`

	CurrentAssets      *float64 `json:"current_assets"`
	CurrentLiabilities *float64 `json:"current_liabilities"`
	TotalLiabilities   *float64 `json:"total_liabilities"`
	TotalAssets        *float64 `json:"total_assets"`
	Equity             *float64 `json:"equity"`
	AnnualDividends    float64  `json:"annual_dividends"`
	Close              *float64 `json:"close"`
	AvgEquity          *float64 `json:"avg_equity"`
	MarketCap          *float64 `json:"market_cap"`
	Revenue            *float64 `json:"revenue"`
	NetIncome          *float64 `json:"net_income"`
	SharesOutstanding  *float64 `json:"shares_outstanding"`
	EPS                *float64 `json:"eps"`

	CurrentRatio    *float64 `json:"current_ratio"`
	DebtToAssets    *float64 `json:"debt_to_assets"`
	DebtToEquity    *float64 `json:"debt_to_equity"`
	DividendYield   *float64 `json:"dividend_yield"`
	ROA             *float64 `json:"roa"`
	ROE             *float64 `json:"roe"`
	PriceToSales    *float64 `json:"price_to_sales"`
	PriceToEarnings *float64 `json:"price_to_earnings"`
	TrailingPE      *float64 `json:"trailing_pe"`
	TenYearAvgPE    *float64 `json:"ten_year_avg_pe"`
}

// BalanceSheet is one quarterly balance-sheet statement. Line items the
// provider does not report for a symbol are nil.
type BalanceSheet struct {
	EndDate            time.Time
	TotalAssets        *float64
	TotalLiabilities   *float64
	CurrentAssets      *float64
	CurrentLiabilities *float64
	StockholderEquity  *float64
}

// IncomeStatement is one quarterly income statement.
type IncomeStatement struct {
	EndDate      time.Time
	NetIncome    *float64
	TotalRevenue *float64
}

// Summary is the provider's key-value bag of headline figures.
type Summary struct {
	MarketCap         *float64
	TotalRevenue      *float64
	SharesOutstanding *float64
	TrailingPE        *float64
}

// Dividend is a single cash dividend event.
type Dividend struct {
	Date   time.Time
	Amount float64
}

// Bar is one closing price observation.
type Bar struct {
	Time  time.Time
	Close float64
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Div returns a/b when both operands are present and non-zero, else nil.
// A zero operand counts as absent so ratios degrade to nil instead of
// dividing by zero or producing a misleading 0.
func Div(a, b *float64) *float64 {
	if a == nil || b == nil || *a == 0 || *b == 0 {
		return nil
	}
	return Float(*a / *b)
}

// Sub returns a-b when both operands are present and non-zero, else nil.
func Sub(a, b *float64) *float64 {
	if a == nil || b == nil || *a == 0 || *b == 0 {
		return nil
	}
	return Float(*a - *b)
}

// Mean returns the arithmetic mean of vs, or nil for an empty slice.
func Mean(vs []float64) *float64 {
	if len(vs) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return Float(sum / float64(len(vs)))
}
