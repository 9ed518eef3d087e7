package fsm

import "time"

// StateID is a unique identifier for a node
type StateID int

const StateNone StateID = 0

// Result is the outcome of an event or transition request
type Result uint8

const (
	// Rejected means the request is not in the transition table; state is unchanged
	Rejected Result = iota
	// NoOp means the request targets the current state; state is unchanged
	NoOp
	// Applied means the machine moved to a new state
	Applied
)

func (r Result) String() string {
	switch r {
	case Rejected:
		return "rejected"
	case NoOp:
		return "noop"
	case Applied:
		return "applied"
	}
	return "unknown"
}

// Machine is a flat finite state machine
// T is the context type passed to actions and guards (e.g. *engine.Game)
type Machine[T any] struct {
	// Graph Data (Immutable after load)
	nodes  map[StateID]*Node[T]
	byName map[string]StateID
	events map[string]struct{}

	// Configuration
	InitialStateID StateID

	// Runtime State
	activeStateID StateID
	timeInState   time.Duration

	// Dependency Injection
	guardReg  map[string]GuardFunc[T]
	actionReg map[string]ActionFunc[T]

	// Optional observer called after every applied transition
	OnTransition func(from, to StateID, event string)
}

// Node represents a state
type Node[T any] struct {
	ID   StateID
	Name string

	// Lifecycle Actions
	OnEnter  []Action[T]
	OnUpdate []Action[T]
	OnExit   []Action[T]

	// Transitions in evaluation order; first matching event with passing guard wins
	Transitions []Transition[T]
}

// Transition defines a link between states
type Transition[T any] struct {
	TargetID StateID
	Event    string
	Guard    GuardFunc[T] // nil = Always true
	Actions  []Action[T]  // Run between the source's OnExit and the target's OnEnter
}

// Action represents a side-effect
type Action[T any] struct {
	Func ActionFunc[T]
	Args map[string]any
}

// GuardFunc returns true if the transition should occur
type GuardFunc[T any] func(ctx T) bool

// ActionFunc executes a side effect
type ActionFunc[T any] func(ctx T, args map[string]any)
