package renderer

import (
	"fmt"

	"github.com/lixenwraith/antcolony/component"
	"github.com/lixenwraith/antcolony/render"
	"github.com/lixenwraith/antcolony/status"
)

// StatusBarRenderer draws the HUD row below the field from snapshot metrics
type StatusBarRenderer struct {
	muted func() bool
}

// NewStatusBarRenderer creates a HUD; muted may be nil when audio is absent
func NewStatusBarRenderer(muted func() bool) *StatusBarRenderer {
	return &StatusBarRenderer{muted: muted}
}

// Render implements SystemRenderer
func (r *StatusBarRenderer) Render(ctx render.RenderContext, buf *render.RenderBuffer) {
	statusY := ctx.FieldHeight
	if statusY >= ctx.ScreenHeight || ctx.Snapshot == nil {
		return
	}

	for x := 0; x < ctx.ScreenWidth; x++ {
		buf.SetWithBg(x, statusY, ' ', render.RgbStatusBar, render.RgbStatusBg)
	}

	x := buf.Text(0, statusY, StatusLine(ctx), render.RgbStatusBar, render.RgbStatusBg)

	if r.muted != nil && r.muted() {
		x = buf.Text(x, statusY, " [MUTE]", render.RgbDim, render.RgbStatusBg)
	}
	if ctx.Paused {
		buf.Text(x, statusY, " [PAUSED]", render.RgbSpecial, render.RgbStatusBg)
	}
}

// StatusLine formats frame, wave, population, kills, reward and the first live boss
func StatusLine(ctx render.RenderContext) string {
	snap := ctx.Snapshot
	m := snap.Metrics
	line := fmt.Sprintf("F:%d W:%d ants:%d foes:%d K:%d/%d R:%d",
		snap.Frame,
		m[status.KeyWave],
		m[status.KeyLiveColony],
		m[status.KeyLiveHostile],
		m[status.KeyKillsHostile],
		m[status.KeyKillsColony],
		m[status.KeyRewardTotal],
	)
	for _, u := range snap.Units {
		if u.Boss == "" || component.VisualState(u.Visual) == component.VisualDead {
			continue
		}
		line += fmt.Sprintf(" | %s %s %d%%", u.Kind, u.Boss, int(u.HP*100+0.5))
		break
	}
	return line
}
