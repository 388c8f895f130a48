package network

import (
	"time"
)

// Config holds snapshot server configuration
type Config struct {
	// Address to bind
	Address string

	// Path the websocket upgrade is served on
	Path string

	// Connection limits
	MaxPeers int

	// Timing
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int

	// ReadLimit caps inbound message size in bytes
	ReadLimit int64

	// SnapshotEvery publishes one snapshot per N frames
	SnapshotEvery int
}

// DefaultConfig returns production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:           ":7777",
		Path:              "/ws",
		MaxPeers:          16,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Second,
		HeartbeatInterval: 10 * time.Second,
		ReadBufferSize:    16 * 1024,
		WriteBufferSize:   64 * 1024,
		SendQueueSize:     256,
		ReadLimit:         4 * 1024,
		SnapshotEvery:     2,
	}
}

// DebugConfig returns config bound to addr for local testing
func DebugConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}
