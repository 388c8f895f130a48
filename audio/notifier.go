package audio

import (
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/parameter"
)

// Player is the sink a Notifier triggers; AudioEngine implements it
type Player interface {
	Play(st SoundType) bool
}

// Notifier maps simulation notifications to sound cues
// It is an engine.Listener and runs on the tick goroutine
type Notifier struct {
	player        Player
	lastExplosion uint64
	exploded      bool
}

// NewNotifier creates a notifier playing through p
func NewNotifier(p Player) *Notifier {
	return &Notifier{player: p}
}

// EventTypes lists the notifications the notifier should be subscribed to
func (n *Notifier) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventExplosion,
		event.EventBossPhaseChanged,
		event.EventBossSpecialStarted,
		event.EventBossEscalated,
		event.EventBossDefeated,
		event.EventColonyLost,
	}
}

// OnEvent implements engine.Listener
func (n *Notifier) OnEvent(ev event.GameEvent) {
	st, ok := n.soundFor(ev)
	if !ok {
		return
	}
	n.player.Play(st)
}

func (n *Notifier) soundFor(ev event.GameEvent) (SoundType, bool) {
	switch ev.Type {
	case event.EventExplosion:
		// Chained bursts in one area collapse into one sound
		if n.exploded && ev.Frame < n.lastExplosion+parameter.AudioExplosionGapFrames {
			return 0, false
		}
		n.exploded = true
		n.lastExplosion = ev.Frame
		return SoundExplosion, true
	case event.EventBossPhaseChanged:
		// DEAD has its own cue
		if p, ok := ev.Payload.(*event.BossPhasePayload); ok && p.Phase == "DEAD" {
			return 0, false
		}
		return SoundBossPhase, true
	case event.EventBossSpecialStarted:
		return SoundBossSpecial, true
	case event.EventBossEscalated:
		return SoundBossEscalate, true
	case event.EventBossDefeated:
		return SoundBossDefeat, true
	case event.EventColonyLost:
		return SoundColonyLost, true
	}
	return 0, false
}
