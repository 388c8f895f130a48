package renderer

import (
	"unicode"
	"unicode/utf8"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/core"
	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/render"
)

// UnitRenderer draws one glyph per unit, corpses first so live units stay on top
type UnitRenderer struct{}

func NewUnitRenderer() *UnitRenderer {
	return &UnitRenderer{}
}

// Render implements SystemRenderer
func (r *UnitRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	snap := ctx.Snapshot
	if snap == nil {
		return
	}
	for pass := 0; pass < 2; pass++ {
		for i := range snap.Units {
			u := &snap.Units[i]
			dead := component.VisualState(u.Visual) == component.VisualDead
			if dead != (pass == 0) {
				continue
			}
			x, y, ok := ctx.ToCell(u.X, u.Y)
			if !ok {
				continue
			}
			fg := render.UnitColor(core.Faction(u.Faction), component.VisualState(u.Visual), u.Boss != "")
			buf.SetFgOnly(x, y, Glyph(u), fg, u.Boss != "")
		}
	}
}

// Glyph picks the cell rune for a unit
// Bosses are upper case, corpses are 'x', impaired units show their mode
func Glyph(u *engine.UnitView) rune {
	if component.VisualState(u.Visual) == component.VisualDead {
		return 'x'
	}
	switch component.BehaviorMode(u.Mode) {
	case component.ModeConfused:
		return '?'
	case component.ModeWebbed:
		return '#'
	}
	r, _ := utf8.DecodeRuneInString(u.Kind)
	if r == utf8.RuneError {
		r = '@'
	}
	if u.Boss != "" {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}
