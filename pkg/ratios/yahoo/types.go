package yahoo

// JSON shapes for the two Yahoo Finance endpoints this client consumes.
// Numeric fields arrive as {raw, fmt} pairs; raw is absent whenever Yahoo
// has no figure, so raw is always a pointer.

type value struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

// raw is a nil-safe accessor for optional values on optional modules.
func (v *value) raw() *float64 {
	if v == nil {
		return nil
	}
	return v.Raw
}

type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// chartResponse covers /v8/finance/chart/{symbol}.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *apiError     `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			// Close holds one entry per timestamp; Yahoo emits null
			// for sessions without a print.
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
	Events struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
	} `json:"events"`
}

// quoteSummaryResponse covers /v10/finance/quoteSummary/{symbol}.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *apiError            `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	BalanceSheetHistoryQuarterly *struct {
		Statements []balanceSheetStatement `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistoryQuarterly"`
	IncomeStatementHistoryQuarterly *struct {
		Statements []incomeStatement `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistoryQuarterly"`
	SummaryDetail        *summaryDetail `json:"summaryDetail"`
	Price                *priceModule   `json:"price"`
	DefaultKeyStatistics *keyStatistics `json:"defaultKeyStatistics"`
	FinancialData        *financialData `json:"financialData"`
}

type balanceSheetStatement struct {
	EndDate                 *value `json:"endDate"`
	TotalAssets             *value `json:"totalAssets"`
	TotalLiab               *value `json:"totalLiab"`
	TotalCurrentAssets      *value `json:"totalCurrentAssets"`
	TotalCurrentLiabilities *value `json:"totalCurrentLiabilities"`
	TotalStockholderEquity  *value `json:"totalStockholderEquity"`
}

type incomeStatement struct {
	EndDate      *value `json:"endDate"`
	NetIncome    *value `json:"netIncome"`
	TotalRevenue *value `json:"totalRevenue"`
}

type summaryDetail struct {
	TrailingPE *value `json:"trailingPE"`
	MarketCap  *value `json:"marketCap"`
}

type priceModule struct {
	MarketCap          *value `json:"marketCap"`
	RegularMarketPrice *value `json:"regularMarketPrice"`
}

type keyStatistics struct {
	SharesOutstanding *value `json:"sharesOutstanding"`
}

type financialData struct {
	TotalRevenue *value `json:"totalRevenue"`
}
