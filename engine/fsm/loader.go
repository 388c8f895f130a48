package fsm

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/antcolony/event"
)

// ParseConfig decodes a YAML graph definition without compiling it
// A parsed config can be compiled into any number of machines
func ParseConfig(data []byte) (*RootConfig, error) {
	var config RootConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}
	if config.States == nil {
		config.States = make(map[string]*StateConfig)
	}
	for name, st := range config.States {
		if st == nil {
			config.States[name] = &StateConfig{}
		}
	}
	return &config, nil
}

// LoadConfig parses a YAML byte slice and populates the Machine
func (m *Machine[T]) LoadConfig(data []byte) error {
	config, err := ParseConfig(data)
	if err != nil {
		return err
	}
	return m.Load(config)
}

// Load compiles a parsed config into the Machine
// Validates all references (states, guards, actions, events) and clears existing graph data
func (m *Machine[T]) Load(config *RootConfig) error {
	m.nodes = make(map[StateID]*Node[T])
	m.names = make(map[string]StateID)
	m.activeStateID = StateNone
	m.activePath = m.activePath[:0]
	m.framesInState = 0

	m.AddState(StateRoot, "Root", StateNone)

	// Sort keys for deterministic ID generation
	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		if name != "Root" {
			stateNames = append(stateNames, name)
		}
	}
	sort.Strings(stateNames)

	nameToID := map[string]StateID{"Root": StateRoot}
	for i, name := range stateNames {
		nameToID[name] = StateID(i + 2)
	}

	// Parents first so AddState order does not matter for lookup
	for _, name := range stateNames {
		cfg := config.States[name]
		pName := cfg.Parent
		if pName == "" {
			pName = "Root"
		}
		parentID, ok := nameToID[pName]
		if !ok {
			return fmt.Errorf("state '%s' references unknown parent '%s': %w", name, pName, ErrUnknownState)
		}
		m.AddState(nameToID[name], name, parentID)
	}

	for _, name := range append([]string{"Root"}, stateNames...) {
		cfg, ok := config.States[name]
		if !ok {
			continue
		}
		node := m.nodes[nameToID[name]]

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state '%s' on_enter: %w", name, err)
		}
		if node.OnUpdate, err = m.compileActions(cfg.OnUpdate); err != nil {
			return fmt.Errorf("state '%s' on_update: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state '%s' on_exit: %w", name, err)
		}
		if err := m.compileTransitions(node, cfg.Transitions, nameToID); err != nil {
			return fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	if err := m.CompilePaths(); err != nil {
		return err
	}

	initialID, ok := nameToID[config.InitialState]
	if !ok || initialID == StateRoot {
		return fmt.Errorf("initial state '%s': %w", config.InitialState, ErrUnknownState)
	}
	m.InitialStateID = initialID
	return nil
}

func (m *Machine[T]) compileActions(configs []ActionConfig) ([]Action[T], error) {
	actions := make([]Action[T], 0, len(configs))
	for _, cfg := range configs {
		fn, ok := m.actionReg[cfg.Action]
		if !ok {
			return nil, fmt.Errorf("unknown action function '%s'", cfg.Action)
		}

		var args any
		switch {
		case cfg.Action == "EmitEvent":
			if cfg.Event == "" {
				return nil, fmt.Errorf("EmitEvent action requires 'event' field")
			}
			et, ok := event.GetEventType(cfg.Event)
			if !ok {
				return nil, fmt.Errorf("unknown event type '%s'", cfg.Event)
			}
			payload := event.NewPayloadStruct(et)
			if payload != nil && cfg.Payload != nil {
				if err := decodeMap(cfg.Payload, payload); err != nil {
					return nil, fmt.Errorf("failed to decode payload for event '%s': %w", cfg.Event, err)
				}
			}
			args = &EmitEventArgs{Type: et, Payload: payload}

		case m.actionArgsReg[cfg.Action] != nil:
			compiled, err := m.actionArgsReg[cfg.Action](cfg.Args)
			if err != nil {
				return nil, fmt.Errorf("action '%s' args: %w", cfg.Action, err)
			}
			args = compiled

		case cfg.Args != nil:
			args = cfg.Args
		}

		actions = append(actions, Action[T]{Func: fn, Args: args})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig, nameToID map[string]StateID) error {
	for _, cfg := range configs {
		targetID, ok := nameToID[cfg.Target]
		if !ok || targetID == StateRoot {
			return fmt.Errorf("transition references unknown target '%s': %w", cfg.Target, ErrUnknownState)
		}

		et, ok := event.GetEventType(cfg.Trigger)
		if !ok {
			return fmt.Errorf("unknown event type '%s'", cfg.Trigger)
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			if factory, ok := m.guardFactoryReg[cfg.Guard]; ok {
				g, err := factory(cfg.GuardArgs)
				if err != nil {
					return fmt.Errorf("guard '%s': %w", cfg.Guard, err)
				}
				guard = g
			} else if g, ok := m.guardReg[cfg.Guard]; ok {
				guard = g
			} else {
				return fmt.Errorf("unknown guard '%s'", cfg.Guard)
			}
		}

		node.Transitions = append(node.Transitions, Transition[T]{
			TargetID: targetID,
			Event:    et,
			Guard:    guard,
		})
	}
	return nil
}

// decodeMap copies a loosely typed YAML map into a tagged struct
func decodeMap(src map[string]any, dst any) error {
	raw, err := yaml.Marshal(src)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, dst)
}
