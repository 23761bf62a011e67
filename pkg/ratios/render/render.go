package render

import (
	"io"

	"github.com/komsit37/ratios/pkg/ratios/types"
)

// Renderer writes snapshots to an output writer.
type Renderer interface {
	Render(w io.Writer, snaps []types.Snapshot, opts Options) error
}

type Options struct {
	Columns     []string
	PrettyJSON  bool
	MaxColWidth int
}
