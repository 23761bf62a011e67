package source

import (
	"context"
	"fmt"
)

// Source loads a ticker list from a specification (e.g. argv slice,
// filepath).
type Source interface {
	Load(ctx context.Context, spec any) ([]string, error)
}

// ArgsSource passes through a ticker slice, typically CLI arguments.
type ArgsSource struct{}

func (ArgsSource) Load(_ context.Context, spec any) ([]string, error) {
	tickers, ok := spec.([]string)
	if !ok {
		return nil, fmt.Errorf("args source expects []string spec")
	}
	return clean(tickers), nil
}
