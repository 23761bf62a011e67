package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/ratios/pkg/ratios/types"
)

func sample() []types.Snapshot {
	return []types.Snapshot{
		{
			Ticker:          "GOOGL",
			CurrentRatio:    types.Float(1.8),
			DebtToAssets:    types.Float(0.28),
			Close:           types.Float(140.12),
			TrailingPE:      types.Float(24.5),
			AnnualDividends: 0.6,
		},
		{Ticker: "AMD"},
	}
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewTableRenderer().Render(&buf, sample(), Options{
		Columns: []string{"ticker", "current_ratio", "roe"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TICKER")
	assert.Contains(t, out, "CURRENT RATIO")
	assert.Contains(t, out, "GOOGL")
	assert.Contains(t, out, "1.80")
	assert.Contains(t, out, "AMD")
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := NewJSONRenderer().Render(&buf, sample(), Options{})
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "GOOGL", decoded[0]["ticker"])
	assert.Equal(t, 1.8, decoded[0]["current_ratio"])

	// absent values are explicit nulls, the record shape is stable
	v, ok := decoded[1]["current_ratio"]
	assert.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, 0.0, decoded[1]["annual_dividends"])
}

func TestJSONRendererEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONRenderer().Render(&buf, nil, Options{}))
	assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
}
