package render

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/komsit37/ratios/pkg/ratios/columns"
	"github.com/komsit37/ratios/pkg/ratios/types"
)

type TableRenderer struct{}

func NewTableRenderer() *TableRenderer { return &TableRenderer{} }

func (r *TableRenderer) Render(w io.Writer, snaps []types.Snapshot, opts Options) error {
	cols := opts.Columns
	if len(cols) == 0 {
		cols = columns.Default()
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleColoredDark)
	tw.Style().Options.DrawBorder = false
	tw.Style().Options.SeparateRows = false
	tw.Style().Options.SeparateColumns = false

	hdr := make(table.Row, len(cols))
	for i, c := range cols {
		if def, ok := columns.Registry[c]; ok {
			hdr[i] = def.Header
		} else {
			hdr[i] = c
		}
	}
	tw.AppendHeader(hdr)

	maxWidth := opts.MaxColWidth
	if maxWidth <= 0 {
		maxWidth = 40
	}
	cfgs := make([]table.ColumnConfig, 0, len(cols))
	for i, c := range cols {
		cfg := table.ColumnConfig{Number: i + 1, WidthMax: maxWidth}
		if def, ok := columns.Registry[c]; ok && def.Numeric {
			cfg.Align = text.AlignRight
			cfg.AlignHeader = text.AlignRight
		}
		cfgs = append(cfgs, cfg)
	}
	tw.SetColumnConfigs(cfgs)

	for _, s := range snaps {
		row := make(table.Row, len(cols))
		for i, c := range cols {
			row[i] = columns.Value(c, s)
		}
		tw.AppendRow(row)
	}

	tw.Render()
	return nil
}
