package fsm

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

// LoadConfig parses a TOML byte slice and populates the Machine
// Validates all references (states, guards, actions)
// Clears existing graph data before loading
func (m *Machine[T]) LoadConfig(data []byte) error {
	// 1. Decode TOML into intermediate config
	var config RootConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to unmarshal FSM config: %w", err)
	}
	if len(config.States) == 0 {
		return fmt.Errorf("FSM config defines no states")
	}

	// 2. Clear existing graph
	m.nodes = make(map[StateID]*Node[T])
	m.byName = make(map[string]StateID)
	m.events = make(map[string]struct{})
	m.activeStateID = StateNone
	m.timeInState = 0

	// 3. First Pass: sorted names for deterministic ID generation
	stateNames := make([]string, 0, len(config.States))
	for name := range config.States {
		stateNames = append(stateNames, name)
	}
	sort.Strings(stateNames)

	for i, name := range stateNames {
		m.AddState(StateID(i+1), name)
	}

	// 4. Second Pass: actions and transitions
	for _, name := range stateNames {
		cfg := config.States[name]
		node := m.nodes[m.byName[name]]
		if cfg == nil {
			continue
		}

		var err error
		if node.OnEnter, err = m.compileActions(cfg.OnEnter); err != nil {
			return fmt.Errorf("state '%s' OnEnter: %w", name, err)
		}
		if node.OnUpdate, err = m.compileActions(cfg.OnUpdate); err != nil {
			return fmt.Errorf("state '%s' OnUpdate: %w", name, err)
		}
		if node.OnExit, err = m.compileActions(cfg.OnExit); err != nil {
			return fmt.Errorf("state '%s' OnExit: %w", name, err)
		}

		if err := m.compileTransitions(node, cfg.Transitions); err != nil {
			return fmt.Errorf("state '%s' transitions: %w", name, err)
		}
	}

	// 5. Validate Initial State
	initialID, ok := m.byName[config.InitialState]
	if !ok {
		return fmt.Errorf("initial state '%s' not found", config.InitialState)
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
		actions = append(actions, Action[T]{Func: fn, Args: cfg.Args})
	}
	return actions, nil
}

func (m *Machine[T]) compileTransitions(node *Node[T], configs []TransitionConfig) error {
	for _, cfg := range configs {
		targetID, ok := m.byName[cfg.Target]
		if !ok {
			return fmt.Errorf("transition references unknown target '%s'", cfg.Target)
		}
		if cfg.Trigger == "" {
			return fmt.Errorf("transition to '%s' has no trigger", cfg.Target)
		}

		var guard GuardFunc[T]
		if cfg.Guard != "" {
			fn, ok := m.guardReg[cfg.Guard]
			if !ok {
				return fmt.Errorf("unknown guard '%s'", cfg.Guard)
			}
			guard = fn
		}

		actions, err := m.compileActions(cfg.Actions)
		if err != nil {
			return fmt.Errorf("transition '%s' -> '%s': %w", cfg.Trigger, cfg.Target, err)
		}

		m.AddTransition(node.ID, Transition[T]{
			TargetID: targetID,
			Event:    cfg.Trigger,
			Guard:    guard,
			Actions:  actions,
		})
	}
	return nil
}
