package network

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"
)

// Transport serves websocket upgrades and owns the peer set
type Transport struct {
	config   *Config
	upgrader websocket.Upgrader
	peers    *PeerManager

	listener net.Listener
	server   *http.Server

	running atomic.Bool
	wg      sync.WaitGroup
}

// NewTransport creates a transport with the given configuration
func NewTransport(cfg *Config) *Transport {
	return &Transport{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// Viewers are read-only; any origin may watch
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		peers: NewPeerManager(cfg),
	}
}

// SetHandlers configures message and connection callbacks
func (t *Transport) SetHandlers(
	onConnect func(*Peer),
	onDisconnect func(*Peer),
	onMessage func(*Peer, *Envelope),
) {
	t.peers.SetHandlers(onConnect, onDisconnect, onMessage)
}

// ServeHTTP upgrades the request and registers the peer
func (t *Transport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		return
	}
	_, _ = t.peers.AddConnection(conn)
}

// Handler returns a mux serving upgrades on the configured path
func (t *Transport) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(t.config.Path, t)
	return mux
}

// Start binds the listener and serves in the background
func (t *Transport) Start() error {
	if !t.running.CompareAndSwap(false, true) {
		return nil // Already running
	}

	ln, err := net.Listen("tcp", t.config.Address)
	if err != nil {
		t.running.Store(false)
		return err
	}
	t.listener = ln
	t.server = &http.Server{
		Handler:     t.Handler(),
		ReadTimeout: t.config.ReadTimeout,
	}

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.running.Store(false)
		}
	}()

	return nil
}

// Addr returns the bound address, or nil before Start
func (t *Transport) Addr() net.Addr {
	if t.listener == nil {
		return nil
	}
	return t.listener.Addr()
}

// Stop halts the server and disconnects all peers
func (t *Transport) Stop(ctx context.Context) error {
	if !t.running.CompareAndSwap(true, false) {
		return nil
	}

	var err error
	if t.server != nil {
		err = t.server.Shutdown(ctx)
	}

	t.peers.Close()
	t.wg.Wait()

	return err
}

// Send transmits to a specific peer
func (t *Transport) Send(id PeerID, data []byte) bool {
	return t.peers.Send(id, data)
}

// Broadcast sends to all peers
func (t *Transport) Broadcast(data []byte) int {
	return t.peers.Broadcast(data)
}

// PeerCount returns connected peer count
func (t *Transport) PeerCount() int {
	return t.peers.PeerCount()
}

// IsRunning returns transport state
func (t *Transport) IsRunning() bool {
	return t.running.Load()
}
