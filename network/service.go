package network

import (
	"context"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/antcolony/engine"
	"github.com/lixenwraith/antcolony/event"
	"github.com/lixenwraith/antcolony/status"
	"github.com/lixenwraith/antcolony/vmath"
)

// Service streams snapshots and notifications to remote viewers
// and feeds their spawn commands into the simulation queue
type Service struct {
	config    *Config
	transport *Transport
	logger    *zap.Logger

	queue *event.EventQueue
	runID string

	seq atomic.Uint32

	statPeers     *atomic.Int64
	statSnapshots *atomic.Int64
}

// NewService creates a snapshot service bound to a simulation world
func NewService(cfg *Config, world *engine.World) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Service{
		config:        cfg,
		transport:     NewTransport(cfg),
		logger:        world.Logger.Named("network"),
		queue:         world.Queue,
		runID:         world.RunID.String(),
		statPeers:     world.Metrics.Ints.Get(status.KeyPeers),
		statSnapshots: world.Metrics.Ints.Get(status.KeySnapshotsSent),
	}
	s.transport.SetHandlers(s.onConnect, s.onDisconnect, s.onMessage)
	return s
}

// Handler exposes the upgrade endpoint for embedding in another server
func (s *Service) Handler() http.Handler {
	return s.transport.Handler()
}

// Start binds the configured address
func (s *Service) Start() error {
	if err := s.transport.Start(); err != nil {
		return err
	}
	s.logger.Info("snapshot server listening", zap.String("addr", s.transport.Addr().String()))
	return nil
}

// Stop shuts the server down and disconnects peers
func (s *Service) Stop(ctx context.Context) error {
	return s.transport.Stop(ctx)
}

// ShouldPublish reports whether frame falls on the snapshot cadence
func (s *Service) ShouldPublish(frame uint64) bool {
	every := s.config.SnapshotEvery
	if every <= 1 {
		return true
	}
	return frame%uint64(every) == 0
}

// Publish encodes one snapshot and queues it to every peer
func (s *Service) Publish(snap engine.Snapshot) {
	if s.transport.PeerCount() == 0 {
		return
	}
	data, err := Encode(MsgSnapshot, s.seq.Add(1), &snap)
	if err != nil {
		s.logger.Error("snapshot encode failed", zap.Uint64("frame", snap.Frame), zap.Error(err))
		return
	}
	if s.transport.Broadcast(data) > 0 {
		s.statSnapshots.Add(1)
	}
}

// OnEvent implements engine.Listener for notification events
func (s *Service) OnEvent(ev event.GameEvent) {
	if s.transport.PeerCount() == 0 {
		return
	}
	frame := EventFrame{
		Name:    event.GetEventName(ev.Type),
		Frame:   ev.Frame,
		Payload: ev.Payload,
	}
	data, err := Encode(MsgEvent, s.seq.Add(1), &frame)
	if err != nil {
		s.logger.Warn("event encode failed", zap.String("event", frame.Name), zap.Error(err))
		return
	}
	s.transport.Broadcast(data)
}

// onConnect greets the peer before its I/O loops start
func (s *Service) onConnect(p *Peer) {
	s.statPeers.Add(1)
	s.logger.Info("peer connected", zap.String("peer", p.ID.String()), zap.String("addr", p.Addr))

	data, err := Encode(MsgHello, s.seq.Add(1), &Hello{Peer: p.ID.String(), RunID: s.runID})
	if err != nil {
		s.logger.Error("hello encode failed", zap.Error(err))
		return
	}
	p.Send(data)
}

// onDisconnect handles peer disconnections
func (s *Service) onDisconnect(p *Peer) {
	s.statPeers.Add(-1)
	s.logger.Info("peer disconnected",
		zap.String("peer", p.ID.String()),
		zap.Uint64("dropped", p.Dropped.Load()))
}

// onMessage handles incoming messages from peer goroutines
func (s *Service) onMessage(p *Peer, env *Envelope) {
	switch env.Type {
	case MsgHeartbeat:
		if data, err := Encode(MsgHeartbeat, s.seq.Add(1), nil); err == nil {
			p.Send(data)
		}

	case MsgSpawn:
		var cmd SpawnCommand
		if err := env.DecodePayload(&cmd); err != nil || cmd.Kind == "" {
			s.logger.Debug("bad spawn command", zap.String("peer", p.ID.String()), zap.Error(err))
			return
		}
		// Frame is stamped zero; the queue is safe for concurrent producers
		event.Emit(s.queue, event.EventSpawnRequest, &event.SpawnRequestPayload{
			Kind: cmd.Kind,
			Pos:  vmath.Vec2{X: cmd.X, Y: cmd.Y},
		}, 0)

	default:
		s.logger.Debug("ignored message", zap.String("peer", p.ID.String()), zap.Stringer("type", env.Type))
	}
}

// PeerCount returns connected peer count
func (s *Service) PeerCount() int {
	return s.transport.PeerCount()
}
