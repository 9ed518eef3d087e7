package fsm

import (
	"fmt"
	"time"
)

// NewMachine creates a new FSM instance
func NewMachine[T any]() *Machine[T] {
	return &Machine[T]{
		nodes:     make(map[StateID]*Node[T]),
		byName:    make(map[string]StateID),
		events:    make(map[string]struct{}),
		guardReg:  make(map[string]GuardFunc[T]),
		actionReg: make(map[string]ActionFunc[T]),
	}
}

// RegisterGuard adds a predicate function to the registry
func (m *Machine[T]) RegisterGuard(name string, fn GuardFunc[T]) {
	m.guardReg[name] = fn
}

// RegisterAction adds a side-effect function to the registry
func (m *Machine[T]) RegisterAction(name string, fn ActionFunc[T]) {
	m.actionReg[name] = fn
}

// Init enters the initial state, running its OnEnter actions
func (m *Machine[T]) Init(ctx T) error {
	node, ok := m.nodes[m.InitialStateID]
	if !ok {
		return fmt.Errorf("initial state ID %d not found", m.InitialStateID)
	}
	m.activeStateID = node.ID
	m.timeInState = 0
	runActions(ctx, node.OnEnter)
	return nil
}

// Update advances time in state and runs OnUpdate actions of the active state
func (m *Machine[T]) Update(ctx T, dt time.Duration) {
	node, ok := m.nodes[m.activeStateID]
	if !ok {
		return
	}
	m.timeInState += dt
	runActions(ctx, node.OnUpdate)
}

// Fire routes an event through the active state's transitions
// An event whose every transition targets the active state is a NoOp
// Unknown events and events with no matching transition are Rejected
func (m *Machine[T]) Fire(ctx T, event string) Result {
	node, ok := m.nodes[m.activeStateID]
	if !ok {
		return Rejected
	}

	for _, trans := range node.Transitions {
		if trans.Event != event {
			continue
		}
		if trans.Guard != nil && !trans.Guard(ctx) {
			continue
		}
		if trans.TargetID == m.activeStateID {
			return NoOp
		}
		m.transition(ctx, trans)
		return Applied
	}

	if m.leadsOnlyTo(event, m.activeStateID) {
		return NoOp
	}
	return Rejected
}

// Request moves to target if any transition from the active state leads there
// Requesting the active state is a NoOp
func (m *Machine[T]) Request(ctx T, target StateID) Result {
	if target == m.activeStateID {
		return NoOp
	}
	node, ok := m.nodes[m.activeStateID]
	if !ok {
		return Rejected
	}
	for _, trans := range node.Transitions {
		if trans.TargetID != target {
			continue
		}
		if trans.Guard != nil && !trans.Guard(ctx) {
			continue
		}
		m.transition(ctx, trans)
		return Applied
	}
	return Rejected
}

// CanTransition reports whether the table has an edge from -> to, ignoring guards
func (m *Machine[T]) CanTransition(from, to StateID) bool {
	node, ok := m.nodes[from]
	if !ok {
		return false
	}
	for _, trans := range node.Transitions {
		if trans.TargetID == to {
			return true
		}
	}
	return false
}

// leadsOnlyTo reports whether event is declared and every edge carrying it ends in id
func (m *Machine[T]) leadsOnlyTo(event string, id StateID) bool {
	if _, ok := m.events[event]; !ok {
		return false
	}
	found := false
	for _, node := range m.nodes {
		for _, trans := range node.Transitions {
			if trans.Event != event {
				continue
			}
			if trans.TargetID != id {
				return false
			}
			found = true
		}
	}
	return found
}

// transition performs the state change: exit, edge actions, switch, enter
func (m *Machine[T]) transition(ctx T, trans Transition[T]) {
	from := m.activeStateID
	if node, ok := m.nodes[from]; ok {
		runActions(ctx, node.OnExit)
	}
	runActions(ctx, trans.Actions)

	m.activeStateID = trans.TargetID
	m.timeInState = 0
	runActions(ctx, m.nodes[trans.TargetID].OnEnter)

	if m.OnTransition != nil {
		m.OnTransition(from, trans.TargetID, trans.Event)
	}
}

func runActions[T any](ctx T, actions []Action[T]) {
	for _, action := range actions {
		action.Func(ctx, action.Args)
	}
}

// Current returns the active state ID
func (m *Machine[T]) Current() StateID {
	return m.activeStateID
}

// CurrentName returns the active state name
func (m *Machine[T]) CurrentName() string {
	if node, ok := m.nodes[m.activeStateID]; ok {
		return node.Name
	}
	return ""
}

// TimeInState returns time accumulated through Update since the last transition
func (m *Machine[T]) TimeInState() time.Duration {
	return m.timeInState
}

// GetStateID resolves a state name
func (m *Machine[T]) GetStateID(name string) (StateID, bool) {
	id, ok := m.byName[name]
	return id, ok
}

// StateName resolves a state ID
func (m *Machine[T]) StateName(id StateID) string {
	if node, ok := m.nodes[id]; ok {
		return node.Name
	}
	return ""
}

// Events returns the declared event names
func (m *Machine[T]) Events() []string {
	out := make([]string, 0, len(m.events))
	for e := range m.events {
		out = append(out, e)
	}
	return out
}

// States returns all state IDs
func (m *Machine[T]) States() []StateID {
	out := make([]StateID, 0, len(m.nodes))
	for id := range m.nodes {
		out = append(out, id)
	}
	return out
}
