package network

import (
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MessageType identifies the semantic meaning of a message
type MessageType uint8

const (
	// Control messages
	MsgHeartbeat MessageType = 0x01
	MsgHello     MessageType = 0x02 // Server greeting with peer and run id

	// Simulation messages
	MsgSnapshot MessageType = 0x11 // Full frame snapshot
	MsgEvent    MessageType = 0x12 // Notification broadcast

	// Client commands
	MsgSpawn MessageType = 0x20 // Spawner request
)

var (
	ErrEmptyMessage   = errors.New("empty message")
	ErrUnknownMessage = errors.New("unknown message type")
)

// Envelope frames every message on the wire as one msgpack document
type Envelope struct {
	Type    MessageType        `msgpack:"t"`
	Seq     uint32             `msgpack:"s"`
	Payload msgpack.RawMessage `msgpack:"p,omitempty"`
}

// Hello is sent to each peer right after the upgrade
type Hello struct {
	Peer  string `msgpack:"peer"`
	RunID string `msgpack:"run"`
}

// EventFrame carries one notification event
type EventFrame struct {
	Name    string `msgpack:"name"`
	Frame   uint64 `msgpack:"frame"`
	Payload any    `msgpack:"payload,omitempty"`
}

// SpawnCommand asks the simulation to create a unit at end of tick
type SpawnCommand struct {
	Kind string  `msgpack:"kind"`
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
}

// Encode marshals v as the payload of a typed envelope
func Encode(t MessageType, seq uint32, v any) ([]byte, error) {
	env := Envelope{Type: t, Seq: seq}
	if v != nil {
		raw, err := msgpack.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode %s payload: %w", t, err)
		}
		env.Payload = raw
	}
	return msgpack.Marshal(&env)
}

// Decode parses an envelope; the payload stays raw until DecodePayload
func Decode(data []byte) (*Envelope, error) {
	if len(data) == 0 {
		return nil, ErrEmptyMessage
	}
	var env Envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if !env.Type.Valid() {
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownMessage, uint8(env.Type))
	}
	return &env, nil
}

// DecodePayload unmarshals the envelope payload into v
func (e *Envelope) DecodePayload(v any) error {
	if len(e.Payload) == 0 {
		return ErrEmptyMessage
	}
	return msgpack.Unmarshal(e.Payload, v)
}

// Valid reports whether t is a known message type
func (t MessageType) Valid() bool {
	switch t {
	case MsgHeartbeat, MsgHello, MsgSnapshot, MsgEvent, MsgSpawn:
		return true
	}
	return false
}

func (t MessageType) String() string {
	switch t {
	case MsgHeartbeat:
		return "heartbeat"
	case MsgHello:
		return "hello"
	case MsgSnapshot:
		return "snapshot"
	case MsgEvent:
		return "event"
	case MsgSpawn:
		return "spawn"
	}
	return fmt.Sprintf("msg(0x%02x)", uint8(t))
}
