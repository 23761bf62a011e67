package columns

import "strings"

// Sets defines named column groups that expand into lists of columns.
var Sets = map[string][]string{
	"ratios": {
		"current_ratio", "debt/assets", "debt/equity", "div_yield%",
		"roa", "roe", "p/s", "p/e", "close", "trailing_pe", "pe10",
	},
	"liquidity":     {"current_ratio"},
	"leverage":      {"debt/assets", "debt/equity"},
	"profitability": {"roa", "roe"},
	"valuation":     {"p/s", "p/e", "trailing_pe", "pe10", "div_yield%"},
	"raw": {
		"current_assets", "current_liabilities", "total_liabilities",
		"total_assets", "equity", "avg_equity", "dividends", "close",
		"mcap", "revenue", "net_income", "shares", "eps",
	},
}

// ExpandSets returns the union of columns for the given set names.
// It preserves the order of the sets and the order of columns within each
// set, and de-duplicates columns while keeping the first occurrence.
func ExpandSets(setNames []string) ([]string, error) {
	out := make([]string, 0, 16)
	seen := map[string]struct{}{}
	for _, name := range setNames {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		cols, ok := Sets[name]
		if !ok {
			return nil, &UnknownSetError{Name: name, Available: availableSets()}
		}
		for _, c := range cols {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	return out, nil
}

// UnknownSetError reports an unknown column set name.
type UnknownSetError struct {
	Name      string
	Available []string
}

func (e *UnknownSetError) Error() string {
	return "unknown column set: " + e.Name + "; available: " + strings.Join(e.Available, ", ")
}

func availableSets() []string {
	keys := make([]string, 0, len(Sets))
	for k := range Sets {
		keys = append(keys, k)
	}
	return keys
}
