package columns

import (
	"fmt"
	"strings"

	"github.com/komsit37/ratios/pkg/ratios/types"
)

// Def describes one renderable column.
type Def struct {
	Header  string
	Numeric bool
	Value   func(s types.Snapshot) string
}

// Registry maps column keys to definitions.
var Registry = map[string]Def{}

func init() {
	Registry["ticker"] = Def{Header: "TICKER", Value: func(s types.Snapshot) string { return s.Ticker }}

	ratio := func(header string, get func(types.Snapshot) *float64) Def {
		return Def{Header: header, Numeric: true, Value: func(s types.Snapshot) string {
			return formatOpt(get(s), 2)
		}}
	}
	amount := func(header string, get func(types.Snapshot) *float64) Def {
		return Def{Header: header, Numeric: true, Value: func(s types.Snapshot) string {
			v := get(s)
			if v == nil {
				return ""
			}
			return FormatFloat(*v, 0)
		}}
	}

	// raw figures
	Registry["current_assets"] = amount("CURRENT ASSETS", func(s types.Snapshot) *float64 { return s.CurrentAssets })
	Registry["current_liabilities"] = amount("CURRENT LIAB", func(s types.Snapshot) *float64 { return s.CurrentLiabilities })
	Registry["total_liabilities"] = amount("TOTAL LIAB", func(s types.Snapshot) *float64 { return s.TotalLiabilities })
	Registry["total_assets"] = amount("TOTAL ASSETS", func(s types.Snapshot) *float64 { return s.TotalAssets })
	Registry["equity"] = amount("EQUITY", func(s types.Snapshot) *float64 { return s.Equity })
	Registry["avg_equity"] = amount("AVG EQUITY", func(s types.Snapshot) *float64 { return s.AvgEquity })
	Registry["mcap"] = amount("MCAP", func(s types.Snapshot) *float64 { return s.MarketCap })
	Registry["revenue"] = amount("REVENUE", func(s types.Snapshot) *float64 { return s.Revenue })
	Registry["net_income"] = amount("NET INCOME", func(s types.Snapshot) *float64 { return s.NetIncome })
	Registry["shares"] = amount("SHARES", func(s types.Snapshot) *float64 { return s.SharesOutstanding })
	Registry["dividends"] = Def{Header: "DIVIDENDS", Numeric: true, Value: func(s types.Snapshot) string {
		return FormatFloat(s.AnnualDividends, 2)
	}}
	Registry["close"] = ratio("CLOSE", func(s types.Snapshot) *float64 { return s.Close })
	Registry["eps"] = ratio("EPS", func(s types.Snapshot) *float64 { return s.EPS })

	// derived ratios
	Registry["current_ratio"] = ratio("CURRENT RATIO", func(s types.Snapshot) *float64 { return s.CurrentRatio })
	Registry["debt/assets"] = ratio("DEBT/ASSETS", func(s types.Snapshot) *float64 { return s.DebtToAssets })
	Registry["debt/equity"] = ratio("DEBT/EQUITY", func(s types.Snapshot) *float64 { return s.DebtToEquity })
	Registry["div_yield%"] = Def{Header: "DIV YIELD%", Numeric: true, Value: func(s types.Snapshot) string {
		if s.DividendYield == nil {
			return ""
		}
		return FormatFloat(*s.DividendYield*100, 2)
	}}
	Registry["roa"] = ratio("ROA", func(s types.Snapshot) *float64 { return s.ROA })
	Registry["roe"] = ratio("ROE", func(s types.Snapshot) *float64 { return s.ROE })
	Registry["p/s"] = ratio("P/S", func(s types.Snapshot) *float64 { return s.PriceToSales })
	Registry["p/e"] = ratio("P/E", func(s types.Snapshot) *float64 { return s.PriceToEarnings })
	Registry["trailing_pe"] = ratio("TRAILING PE", func(s types.Snapshot) *float64 { return s.TrailingPE })
	Registry["pe10"] = ratio("PE10", func(s types.Snapshot) *float64 { return s.TenYearAvgPE })
}

// Default is the column selection printed when the caller asks for
// nothing specific.
func Default() []string {
	return []string{
		"ticker", "current_ratio", "debt/assets", "debt/equity", "div_yield%",
		"roa", "roe", "p/s", "p/e", "close", "trailing_pe", "pe10",
	}
}

// Compute resolves an explicit column list: unknown keys are rejected,
// duplicates are dropped keeping the first occurrence, and ticker is
// forced to the front.
func Compute(explicit []string) ([]string, error) {
	if len(explicit) == 0 {
		return Default(), nil
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(explicit)+1)
	for _, k := range explicit {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := Registry[k]; !ok {
			return nil, fmt.Errorf("unknown column: %s", k)
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	if _, ok := seen["ticker"]; !ok {
		out = append([]string{"ticker"}, out...)
	} else if out[0] != "ticker" {
		filtered := make([]string, 0, len(out))
		filtered = append(filtered, "ticker")
		for _, k := range out {
			if k != "ticker" {
				filtered = append(filtered, k)
			}
		}
		out = filtered
	}
	return out, nil
}

// Value renders the column for a snapshot; unknown keys render empty.
func Value(key string, s types.Snapshot) string {
	if def, ok := Registry[key]; ok {
		return def.Value(s)
	}
	return ""
}

func formatOpt(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	return FormatFloat(*v, decimals)
}

// FormatFloat renders v with the given number of decimals and comma
// thousand separators on the integer part.
func FormatFloat(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)
	intPart := s
	fracPart := ""
	if dot := strings.IndexByte(s, '.'); dot != -1 {
		intPart, fracPart = s[:dot], s[dot:]
	}
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + fracPart
	}
	out := make([]byte, 0, n+n/3)
	rem := n % 3
	if rem == 0 {
		rem = 3
	}
	out = append(out, intPart[:rem]...)
	for i := rem; i < n; i += 3 {
		out = append(out, ',')
		out = append(out, intPart[i:i+3]...)
	}
	return sign + string(out) + fracPart
}
