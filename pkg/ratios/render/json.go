package render

import (
	"encoding/json"
	"io"

	"github.com/komsit37/ratios/pkg/ratios/types"
)

// JSONRenderer emits full snapshots; absent fields encode as null so a
// record's shape is stable regardless of what the provider reported.
type JSONRenderer struct{}

func NewJSONRenderer() *JSONRenderer { return &JSONRenderer{} }

func (r *JSONRenderer) Render(w io.Writer, snaps []types.Snapshot, opts Options) error {
	enc := json.NewEncoder(w)
	if opts.PrettyJSON {
		enc.SetIndent("", "  ")
	}
	if snaps == nil {
		snaps = []types.Snapshot{}
	}
	return enc.Encode(snaps)
}
