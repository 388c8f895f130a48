package renderer

import (
	"math"

	"github.com/lixenwraith/antcolony/parameter"
	"github.com/lixenwraith/antcolony/render"
)

// ExplosionRenderer tints the background under live explosion markers
// Intensity falls off from the center and fades as the marker expires
type ExplosionRenderer struct{}

func NewExplosionRenderer() *ExplosionRenderer {
	return &ExplosionRenderer{}
}

// Render implements SystemRenderer
func (r *ExplosionRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	sx, sy := ctx.CellsPerUnit()
	if sx == 0 || sy == 0 {
		return
	}

	for _, m := range ctx.Snapshot.Markers {
		if m.Radius <= 0 || m.Remaining <= 0 {
			continue
		}
		fade := math.Min(float64(m.Remaining)/parameter.ExplosionMarkerFrames, 1)

		cx, cy, _ := ctx.ToCell(m.X, m.Y)
		rx := int(math.Ceil(m.Radius * sx))
		ry := int(math.Ceil(m.Radius * sy))

		for y := cy - ry; y <= cy+ry; y++ {
			for x := cx - rx; x <= cx+rx; x++ {
				if x < 0 || x >= ctx.FieldWidth || y < 0 || y >= ctx.FieldHeight {
					continue
				}
				// Distance in world units from the cell center to the blast center
				wx := (float64(x)+0.5)/sx - m.X
				wy := (float64(y)+0.5)/sy - m.Y
				d := math.Hypot(wx, wy)
				if d > m.Radius {
					continue
				}
				t := 1 - d/m.Radius
				color := render.Lerp(render.RgbExplosionEdge, render.RgbExplosionCore, t)
				buf.BlendBg(x, y, color, 0.3+0.6*t*fade)
			}
		}
	}
}
