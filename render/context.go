package render

import (
	"github.com/lixenwraith/antcolony/engine"
)

// StatusRows is the height of the HUD below the field
const StatusRows = 1

// RenderContext provides frame state for renderers, passed by value
type RenderContext struct {
	Snapshot *engine.Snapshot

	// Screen dimensions (terminal size)
	ScreenWidth  int
	ScreenHeight int

	// Field is the screen area the world is scaled into
	FieldWidth  int
	FieldHeight int

	// Paused is shown by the HUD
	Paused bool
}

// NewRenderContext lays out the field above the status rows
func NewRenderContext(snap *engine.Snapshot, screenWidth, screenHeight int) RenderContext {
	return RenderContext{
		Snapshot:     snap,
		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
		FieldWidth:   screenWidth,
		FieldHeight:  max(screenHeight-StatusRows, 0),
	}
}

// ToCell maps world coordinates to a field cell; ok is false outside the field
func (c RenderContext) ToCell(x, y float64) (cx, cy int, ok bool) {
	if c.Snapshot == nil || c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		return 0, 0, false
	}
	cx = int(x / c.Snapshot.Width * float64(c.FieldWidth))
	cy = int(y / c.Snapshot.Height * float64(c.FieldHeight))
	ok = cx >= 0 && cx < c.FieldWidth && cy >= 0 && cy < c.FieldHeight
	return cx, cy, ok
}

// CellsPerUnit returns the horizontal and vertical scale from world units to cells
func (c RenderContext) CellsPerUnit() (sx, sy float64) {
	if c.Snapshot == nil || c.Snapshot.Width <= 0 || c.Snapshot.Height <= 0 {
		return 0, 0
	}
	return float64(c.FieldWidth) / c.Snapshot.Width, float64(c.FieldHeight) / c.Snapshot.Height
}
