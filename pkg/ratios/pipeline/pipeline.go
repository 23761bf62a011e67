package pipeline

import (
	"context"
	"errors"
	"io"

	"github.com/komsit37/ratios/pkg/ratios/columns"
	"github.com/komsit37/ratios/pkg/ratios/extract"
	"github.com/komsit37/ratios/pkg/ratios/render"
	"github.com/komsit37/ratios/pkg/ratios/source"
)

type Runner struct {
	Source    source.Source
	Extractor *extract.Extractor
	Renderer  render.Renderer
	Writer    io.Writer
}

type ExecuteOptions struct {
	Columns     []string
	Sets        []string
	PrettyJSON  bool
	MaxColWidth int
}

func (r *Runner) Execute(ctx context.Context, spec any, opts ExecuteOptions) error {
	tickers, err := r.Source.Load(ctx, spec)
	if err != nil {
		return err
	}
	if len(tickers) == 0 {
		return errors.New("no tickers to process")
	}

	explicit := opts.Columns
	if len(opts.Sets) > 0 {
		expanded, err := columns.ExpandSets(opts.Sets)
		if err != nil {
			return err
		}
		explicit = append(expanded, explicit...)
	}
	cols, err := columns.Compute(explicit)
	if err != nil {
		return err
	}

	snaps := r.Extractor.Run(ctx, tickers)
	return r.Renderer.Render(r.Writer, snaps, render.Options{
		Columns:     cols,
		PrettyJSON:  opts.PrettyJSON,
		MaxColWidth: opts.MaxColWidth,
	})
}
