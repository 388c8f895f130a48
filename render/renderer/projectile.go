package renderer

import (
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/render"
)

// ProjectileRenderer draws in-flight projectiles; arcing shots above ground use a raised dot
type ProjectileRenderer struct{}

func NewProjectileRenderer() *ProjectileRenderer {
	return &ProjectileRenderer{}
}

// Render implements SystemRenderer
func (r *ProjectileRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	if ctx.Snapshot == nil {
		return
	}
	for _, p := range ctx.Snapshot.Projectiles {
		x, y, ok := ctx.ToCell(p.X, p.Y)
		if !ok {
			continue
		}
		fg := render.RgbProjectileHostile
		if core.Faction(p.Faction) == core.FactionColony {
			fg = render.RgbProjectileColony
		}
		glyph := '*'
		if p.Z > 0 {
			glyph = '°'
		}
		buf.SetFgOnly(x, y, glyph, fg, false)
	}
}
