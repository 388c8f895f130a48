package fsm

import (
	"fmt"

	"github.com/lixenwraith/antcolony/event"
)

// NewMachine creates a new FSM instance with the built-in guard factories registered
func NewMachine[T any]() *Machine[T] {
	m := &Machine[T]{
		nodes:           make(map[StateID]*Node[T]),
		names:           make(map[string]StateID),
		guardReg:        make(map[string]GuardFunc[T]),
		guardFactoryReg: make(map[string]GuardFactoryFunc[T]),
		actionReg:       make(map[string]ActionFunc[T]),
		actionArgsReg:   make(map[string]ActionArgsFunc),
	}
	m.RegisterGuardFactory("StateTimeExceeds", stateTimeExceeds[T])
	return m
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterGuardFactory adds a parameterized guard factory to the registry
func (m *Machine[T]) RegisterGuardFactory(name string, factory GuardFactoryFunc[T]) {
	m.guardFactoryReg[name] = factory
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// RegisterActionArgs attaches an args compiler to a registered action
func (m *Machine[T]) RegisterActionArgs(name string, fn ActionArgsFunc) {
	m.actionArgsReg[name] = fn
}

// OnTransition sets a hook called after every completed state change
func (m *Machine[T]) OnTransition(fn func(ctx T, from, to string)) {
	m.onTransition = fn
}

// Init enters the initial state, running OnEnter for the chain Root -> Initial
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d: %w", m.InitialStateID, ErrUnknownState)
	}

	m.activeStateID = m.InitialStateID
	m.framesInState = 0
	m.activePath = append(m.activePath[:0], node.Path...)

	for _, id := range m.activePath {
		if n, exists := m.nodes[id]; exists {
			runActions(ctx, n.OnEnter)
		}
	}
	if m.onTransition != nil {
		m.onTransition(ctx, "", node.Name)
	}
	return nil
}

// Update advances the machine by one frame
// Runs OnUpdate of the leaf, then evaluates Tick transitions bubbling Leaf -> Root
func (m *Machine[T]) Update(ctx T) error {
	if m.activeStateID == StateNone {
		return ErrNotInitialized
	}
	leaf, ok := m.nodes[m.activeStateID]
	if !ok {
		return fmt.Errorf("active state ID %d: %w", m.activeStateID, ErrUnknownState)
	}

	m.framesInState++
	runActions(ctx, leaf.OnUpdate)

	// OnUpdate may have triggered a transition via HandleEvent
	if m.activeStateID != leaf.ID {
		return nil
	}
	return m.fire(ctx, 0)
}

// HandleEvent routes an external event through the active path
// Returns true if the event triggered a transition
func (m *Machine[T]) HandleEvent(ctx T, eventType event.EventType) bool {
	if m.activeStateID == StateNone {
		return false
	}
	before := m.activeStateID
	if err := m.fire(ctx, eventType); err != nil {
		return false
	}
	return m.activeStateID != before
}

// fire finds the first matching transition walking Leaf -> Parent -> Root
func (m *Machine[T]) fire(ctx T, eventType event.EventType) error {
	currID := m.activeStateID
	for currID != StateNone {
		node, ok := m.nodes[currID]
		if !ok {
			return fmt.Errorf("state ID %d: %w", currID, ErrUnknownState)
		}
		for _, trans := range node.Transitions {
			if trans.Event != eventType {
				continue
			}
			if trans.Guard == nil || trans.Guard(ctx, m) {
				return m.transition(ctx, trans.TargetID)
			}
		}
		currID = node.ParentID
	}
	return nil
}

// transition performs the state change with LCA exit/enter ordering
func (m *Machine[T]) transition(ctx T, targetID StateID) error {
	if m.activeStateID == targetID {
		return nil
	}

	targetNode, ok := m.nodes[targetID]
	if !ok {
		return fmt.Errorf("transition to state ID %d: %w", targetID, ErrUnknownState)
	}
	fromName := m.nodes[m.activeStateID].Name

	lcaIndex := -1
	currentPath := m.activePath
	targetPath := targetNode.Path
	minLen := min(len(currentPath), len(targetPath))
	for i := 0; i < minLen; i++ {
		if currentPath[i] != targetPath[i] {
			break
		}
		lcaIndex = i
	}

	// Exit: current leaf up to LCA (exclusive)
	for i := len(currentPath) - 1; i > lcaIndex; i-- {
		if node, exists := m.nodes[currentPath[i]]; exists {
			runActions(ctx, node.OnExit)
		}
	}

	// Committed before OnEnter so enter actions observe the new state
	m.activeStateID = targetID
	m.framesInState = 0
	m.activePath = append(m.activePath[:0], targetPath...)

	// Enter: LCA (exclusive) down to target leaf
	for i := lcaIndex + 1; i < len(targetPath); i++ {
		if node, exists := m.nodes[targetPath[i]]; exists {
			runActions(ctx, node.OnEnter)
		}
	}

	if m.onTransition != nil {
		m.onTransition(ctx, fromName, targetNode.Name)
	}
	return nil
}

// Reset exits the active chain and re-enters the initial state
func (m *Machine[T]) Reset(ctx T) error {
	if m.activeStateID != StateNone {
		for i := len(m.activePath) - 1; i >= 0; i-- {
			if node, ok := m.nodes[m.activePath[i]]; ok {
				runActions(ctx, node.OnExit)
			}
		}
	}
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	return m.Init(ctx)
}

// Current returns the name of the active leaf state, empty before Init
func (m *Machine[T]) Current() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// CurrentID returns the active leaf state ID
func (m *Machine[T]) CurrentID() StateID {
	return m.activeStateID
}

// FramesInState returns frames elapsed since the active leaf was entered
func (m *Machine[T]) FramesInState() int {
	return m.framesInState
}

// IsIn reports whether the named state is on the active path
func (m *Machine[T]) IsIn(name string) bool {
	id, ok := m.names[name]
	if !ok {
		return false
	}
	for _, p := range m.activePath {
		if p == id {
			return true
		}
	}
	return false
}

// StateID resolves a state name
func (m *Machine[T]) StateID(name string) (StateID, bool) {
	id, ok := m.names[name]
	return id, ok
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}

// stateTimeExceeds builds a guard true once the leaf has been active for at least N frames
func stateTimeExceeds[T any](args map[string]any) (GuardFunc[T], error) {
	frames, err := intArg(args, "frames")
	if err != nil {
		return nil, err
	}
	return func(ctx T, m *Machine[T]) bool {
		return m.framesInState >= frames
	}, nil
}

// intArg reads an integer argument decoded from YAML
func intArg(args map[string]any, key string) (int, error) {
	raw, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch v := raw.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case uint64:
		return int(v), nil
	case float64:
		return int(v), nil
	default:
		return 0, fmt.Errorf("argument %q: expected number, got %T", key, raw)
	}
}
