package renderer

import (
	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/render"
)

const bossBarWidth = 5

// HealthBarRenderer draws a short bar above each live boss
type HealthBarRenderer struct{}

func NewHealthBarRenderer() *HealthBarRenderer {
	return &HealthBarRenderer{}
}

// Render implements SystemRenderer
func (r *HealthBarRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	for _, u := range ctx.Snapshot.Units {
		if u.Boss == "" || component.VisualState(u.Visual) == component.VisualDead {
			continue
		}
		x, y, ok := ctx.ToCell(u.X, u.Y)
		if !ok || y == 0 {
			continue
		}
		filled := int(u.HP*bossBarWidth + 0.5)
		if u.HP > 0 && filled == 0 {
			filled = 1
		}
		color := render.HealthColor(u.HP)
		start := x - bossBarWidth/2
		for i := 0; i < bossBarWidth; i++ {
			glyph, fg := '─', render.RgbDim
			if i < filled {
				glyph, fg = '━', color
			}
			buf.SetFgOnly(start+i, y-1, glyph, fg, false)
		}
	}
}
