package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/antcolony/engine"
)

type rendererEntry struct {
	renderer SystemRenderer
	priority RenderPriority
	index    int // registration order for stable sort
}

// RenderOrchestrator coordinates the render pipeline
type RenderOrchestrator struct {
	screen    tcell.Screen
	buffer    *RenderBuffer
	renderers []rendererEntry
	regCount  int
	paused    bool
}

// NewRenderOrchestrator creates an orchestrator sized to the screen
func NewRenderOrchestrator(screen tcell.Screen) *RenderOrchestrator {
	w, h := screen.Size()
	return &RenderOrchestrator{
		screen:    screen,
		buffer:    NewRenderBuffer(w, h),
		renderers: make([]rendererEntry, 0, 8),
	}
}

// Register adds a renderer at the specified priority. Maintains sorted order via insertion sort
func (o *RenderOrchestrator) Register(r SystemRenderer, priority RenderPriority) {
	entry := rendererEntry{
		renderer: r,
		priority: priority,
		index:    o.regCount,
	}
	o.regCount++

	pos := len(o.renderers)
	for i, e := range o.renderers {
		if priority < e.priority || (priority == e.priority && entry.index < e.index) {
			pos = i
			break
		}
	}

	o.renderers = append(o.renderers, rendererEntry{})
	copy(o.renderers[pos+1:], o.renderers[pos:])
	o.renderers[pos] = entry
}

// SetPaused toggles the HUD pause flag
func (o *RenderOrchestrator) SetPaused(p bool) {
	o.paused = p
}

// Resize updates buffer dimensions and syncs the screen
func (o *RenderOrchestrator) Resize() {
	w, h := o.screen.Size()
	o.buffer.Resize(w, h)
	o.screen.Sync()
}

// Buffer exposes the composited frame for inspection
func (o *RenderOrchestrator) Buffer() *RenderBuffer {
	return o.buffer
}

// RenderFrame executes the render pipeline: clear, render all, flush, show
func (o *RenderOrchestrator) RenderFrame(snap *engine.Snapshot) {
	if w, h := o.screen.Size(); w != o.buffer.width || h != o.buffer.height {
		o.buffer.Resize(w, h)
	}
	o.buffer.Clear()

	ctx := NewRenderContext(snap, o.buffer.width, o.buffer.height)
	ctx.Paused = o.paused

	for _, entry := range o.renderers {
		if vt, ok := entry.renderer.(VisibilityToggle); ok && !vt.IsVisible() {
			continue
		}
		entry.renderer.Render(ctx, o.buffer)
	}

	o.buffer.FlushToScreen(o.screen)
	o.screen.Show()
}
