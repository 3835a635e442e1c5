package softrender

import (
	"fmt"
	"log/slog"
)

// Stats counts what happened during one fragment stage run.
type Stats struct {
	Primitives    int // primitives handed to the fragment stage
	Culled        int // triangles removed by face culling
	Degenerate    int // zero-area triangles
	Outside       int // primitives with no pixel in the framebuffer
	Tiles         int // tiles with at least one primitive
	Fragments     int // fragments shaded and written
	Discarded     int // fragments the shader discarded
	DepthFailed   int // samples rejected by the depth range or depth test
	StencilFailed int // samples rejected by the stencil test
}

func (s *Stats) add(o Stats) {
	s.Fragments += o.Fragments
	s.Discarded += o.Discarded
	s.DepthFailed += o.DepthFailed
	s.StencilFailed += o.StencilFailed
}

// String implements fmt.Stringer.
func (s Stats) String() string {
	return fmt.Sprintf("primitives=%d culled=%d degenerate=%d outside=%d tiles=%d fragments=%d discarded=%d depth-failed=%d stencil-failed=%d",
		s.Primitives, s.Culled, s.Degenerate, s.Outside, s.Tiles,
		s.Fragments, s.Discarded, s.DepthFailed, s.StencilFailed)
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("primitives", s.Primitives),
		slog.Int("culled", s.Culled),
		slog.Int("degenerate", s.Degenerate),
		slog.Int("outside", s.Outside),
		slog.Int("tiles", s.Tiles),
		slog.Int("fragments", s.Fragments),
		slog.Int("discarded", s.Discarded),
		slog.Int("depth_failed", s.DepthFailed),
		slog.Int("stencil_failed", s.StencilFailed),
	)
}
