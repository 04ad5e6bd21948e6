package leadgen

import (
	"context"

	"github.com/namekart/lead-gen-deep-research/internal/model"
)

// Researcher is the research-path discovery capability. Given a brief and
// the seeded supervisor context, it returns diagnostic notes and candidate
// leads. Its internal iteration and tool use are opaque to the engine.
type Researcher interface {
	Run(ctx context.Context, brief string, seed []model.Message) (notes []string, leads []model.Lead, err error)
}
