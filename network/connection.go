package network

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var ErrMaxPeers = errors.New("max peers reached")

// PeerID uniquely identifies a connected peer
type PeerID = uuid.UUID

// Peer represents a remote viewer
type Peer struct {
	ID       PeerID
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	// Dropped counts messages discarded because the send queue was full
	Dropped atomic.Uint64

	conn   *websocket.Conn
	config *Config

	// Send queue of encoded envelopes
	sendCh chan []byte

	// Lifecycle
	closeCh   chan struct{}
	closeOnce sync.Once
}

// newPeer wraps an upgraded connection
func newPeer(conn *websocket.Conn, cfg *Config) *Peer {
	p := &Peer{
		ID:      uuid.New(),
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		config:  cfg,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		closeCh: make(chan struct{}),
	}
	p.LastSeen.Store(time.Now().UnixNano())
	return p
}

// Send queues an encoded message for transmission
// Returns false if peer is closed or queue full; a slow viewer loses frames instead of stalling the tick
func (p *Peer) Send(data []byte) bool {
	select {
	case <-p.closeCh:
		return false
	default:
	}

	select {
	case p.sendCh <- data:
		return true
	default:
		p.Dropped.Add(1)
		return false
	}
}

// Closed is closed once the peer disconnects
func (p *Peer) Closed() <-chan struct{} {
	return p.closeCh
}

// Close initiates shutdown
func (p *Peer) Close() {
	p.closeOnce.Do(func() {
		close(p.closeCh)
		p.conn.Close()
	})
}

// readLoop reads messages until the connection fails or the read deadline passes
func (p *Peer) readLoop(handler func(*Peer, *Envelope)) {
	defer p.Close()

	p.conn.SetReadLimit(p.config.ReadLimit)
	_ = p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
	p.conn.SetPongHandler(func(string) error {
		p.touch()
		return nil
	})

	for {
		kind, data, err := p.conn.ReadMessage()
		if err != nil {
			return
		}
		p.touch()
		if kind != websocket.BinaryMessage {
			continue
		}

		env, err := Decode(data)
		if err != nil {
			continue
		}
		handler(p, env)
	}
}

// touch records activity and extends the read deadline
func (p *Peer) touch() {
	p.LastSeen.Store(time.Now().UnixNano())
	_ = p.conn.SetReadDeadline(time.Now().Add(p.config.ReadTimeout))
}

// writeLoop sends queued messages and pings on the heartbeat interval
func (p *Peer) writeLoop() {
	defer p.Close()

	ticker := time.NewTicker(p.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.closeCh:
			_ = p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(p.config.WriteTimeout))
			return
		case data := <-p.sendCh:
			_ = p.conn.SetWriteDeadline(time.Now().Add(p.config.WriteTimeout))
			if err := p.conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			if err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(p.config.WriteTimeout)); err != nil {
				return
			}
		}
	}
}

// PeerManager handles multiple peer connections
type PeerManager struct {
	mu       sync.RWMutex
	peers    map[PeerID]*Peer
	maxPeers int
	config   *Config
	wg       sync.WaitGroup

	// Callbacks
	onConnect    func(*Peer)
	onDisconnect func(*Peer)
	onMessage    func(*Peer, *Envelope)
}

// NewPeerManager creates a peer manager
func NewPeerManager(cfg *Config) *PeerManager {
	return &PeerManager{
		peers:    make(map[PeerID]*Peer),
		maxPeers: cfg.MaxPeers,
		config:   cfg,
	}
}

// SetHandlers configures event callbacks
func (pm *PeerManager) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(*Peer),
	onMessage func(*Peer, *Envelope),
) {
	pm.onConnect = onConnect
	pm.onDisconnect = onDisconnect
	pm.onMessage = onMessage
}

// AddConnection registers a new peer from an upgraded connection
// onConnect runs before the I/O loops start, so anything it sends is the first frame the peer sees
func (pm *PeerManager) AddConnection(conn *websocket.Conn) (*Peer, error) {
	pm.mu.Lock()
	if len(pm.peers) >= pm.maxPeers {
		pm.mu.Unlock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, ErrMaxPeers.Error()),
			time.Now().Add(pm.config.WriteTimeout))
		conn.Close()
		return nil, ErrMaxPeers
	}
	peer := newPeer(conn, pm.config)
	pm.peers[peer.ID] = peer
	pm.mu.Unlock()

	if pm.onConnect != nil {
		pm.onConnect(peer)
	}

	pm.wg.Add(3)
	go func() { defer pm.wg.Done(); peer.readLoop(pm.handleMessage) }()
	go func() { defer pm.wg.Done(); peer.writeLoop() }()
	go func() { defer pm.wg.Done(); pm.monitorPeer(peer) }()

	return peer, nil
}

// handleMessage routes received messages
func (pm *PeerManager) handleMessage(peer *Peer, env *Envelope) {
	if pm.onMessage != nil {
		pm.onMessage(peer, env)
	}
}

// monitorPeer watches for disconnection
func (pm *PeerManager) monitorPeer(peer *Peer) {
	<-peer.closeCh

	pm.mu.Lock()
	delete(pm.peers, peer.ID)
	pm.mu.Unlock()

	if pm.onDisconnect != nil {
		pm.onDisconnect(peer)
	}
}

// Send transmits encoded data to a specific peer
func (pm *PeerManager) Send(id PeerID, data []byte) bool {
	pm.mu.RLock()
	peer, ok := pm.peers[id]
	pm.mu.RUnlock()

	if !ok {
		return false
	}
	return peer.Send(data)
}

// Broadcast sends encoded data to all connected peers, returning how many accepted it
func (pm *PeerManager) Broadcast(data []byte) int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	sent := 0
	for _, peer := range pm.peers {
		if peer.Send(data) {
			sent++
		}
	}
	return sent
}

// GetPeer retrieves a peer by ID
func (pm *PeerManager) GetPeer(id PeerID) (*Peer, bool) {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	p, ok := pm.peers[id]
	return p, ok
}

// PeerCount returns current connected peer count
func (pm *PeerManager) PeerCount() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}

// Close disconnects all peers and waits for their loops to exit
func (pm *PeerManager) Close() {
	pm.mu.RLock()
	peers := make([]*Peer, 0, len(pm.peers))
	for _, peer := range pm.peers {
		peers = append(peers, peer)
	}
	pm.mu.RUnlock()

	for _, peer := range peers {
		peer.Close()
	}
	pm.wg.Wait()
}
