// Package fsm is a generic hierarchical finite state machine driven by frames and events
package fsm

import (
	"errors"

	"github.com/lixenwraith/antcolony/event"
)

// StateID is a unique identifier for a node
type StateID int

const (
	StateNone StateID = 0
	StateRoot StateID = 1
)

var (
	// ErrUnknownState is returned when a transition or config references a missing state
	ErrUnknownState = errors.New("unknown state")
	// ErrNotInitialized is returned when the machine is updated before Init
	ErrNotInitialized = errors.New("machine not initialized")
)

// Machine is the generic Hierarchical Finite State Machine runtime
// T is the context type passed to actions and guards (e.g. *system.BossContext)
type Machine[T any] struct {
	// Graph Data (Immutable after load)
	nodes map[StateID]*Node[T]
	names map[string]StateID

	// InitialStateID is stored during load for reset
	InitialStateID StateID

	// Runtime State
	activeStateID StateID
	activePath    []StateID // Root -> ... -> Leaf
	framesInState int

	// Dependency Injection
	guardReg        map[string]GuardFunc[T]
	guardFactoryReg map[string]GuardFactoryFunc[T]
	actionReg       map[string]ActionFunc[T]
	actionArgsReg   map[string]ActionArgsFunc

	onTransition func(ctx T, from, to string)
}

// Node represents a state in the hierarchy
type Node[T any] struct {
	ID       StateID
	Name     string
	ParentID StateID

	// Path is the pre-calculated Root -> Node chain used for LCA lookup
	Path []StateID

	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation order
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    event.EventType // 0 = Tick (auto-transition)
	Guard    GuardFunc[T]    // nil = Always true
}

// Action represents a side-effect
type Action[T any] struct {
	Func ActionFunc[T]
	Args any // Pre-compiled args
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T, m *Machine[T]) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args any)

// GuardFactoryFunc creates a parameterized guard from config args
type GuardFactoryFunc[T any] func(args map[string]any) (GuardFunc[T], error)

// ActionArgsFunc pre-compiles config args for an action at load time
type ActionArgsFunc func(args map[string]any) (any, error)

// EmitEventArgs is the compiled argument of the EmitEvent action
type EmitEventArgs struct {
	Type    event.EventType
	Payload any
}
