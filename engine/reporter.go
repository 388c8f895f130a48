package engine

import (
	"errors"

	"github.com/lixenwraith/antcolony/core"
)

var (
	// ErrUnitNotFound is returned for operations on entities that are not live units
	ErrUnitNotFound = errors.New("unit not found")

	// ErrUnitPanic wraps a recovered panic from a single unit's update
	ErrUnitPanic = errors.New("unit update panicked")

	// ErrCorruptState reports a state machine or component in an impossible state
	ErrCorruptState = errors.New("corrupt state")
)

// Warning is a reportable problem that did not halt the tick
type Warning struct {
	Frame  uint64
	System string
	Entity core.Entity
	Err    error
}

// Reporter receives warnings surfaced to the host application
type Reporter interface {
	Report(w Warning)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(w Warning)

func (f ReporterFunc) Report(w Warning) {
	f(w)
}
