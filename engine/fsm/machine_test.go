package fsm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type recorder struct {
	log     []string
	allowed bool
}

const testGraph = `
initial = "Idle"

[states.Idle]
on_enter = [{ action = "Mark", args = { tag = "enter_idle" } }]
on_exit = [{ action = "Mark", args = { tag = "exit_idle" } }]
transitions = [
    { trigger = "go", target = "Busy" },
    { trigger = "locked", target = "Busy", guard = "Allowed" },
]

[states.Busy]
on_update = [{ action = "Mark", args = { tag = "tick" } }]
transitions = [
    { trigger = "stop", target = "Idle" },
    { trigger = "finish", target = "Done" },
]

[states.Done]
`

func newTestMachine(t *testing.T) (*Machine[*recorder], *recorder) {
	t.Helper()
	m := NewMachine[*recorder]()
	m.RegisterAction("Mark", func(r *recorder, args map[string]any) {
		tag, _ := args["tag"].(string)
		r.log = append(r.log, tag)
	})
	m.RegisterGuard("Allowed", func(r *recorder) bool { return r.allowed })

	if err := m.LoadConfig([]byte(testGraph)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	r := &recorder{}
	if err := m.Init(r); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return m, r
}

func TestMachine_InitEntersInitial(t *testing.T) {
	m, r := newTestMachine(t)
	if m.CurrentName() != "Idle" {
		t.Errorf("Expected Idle, got %s", m.CurrentName())
	}
	if len(r.log) != 1 || r.log[0] != "enter_idle" {
		t.Errorf("Expected [enter_idle], got %v", r.log)
	}
}

func TestMachine_FireResults(t *testing.T) {
	m, r := newTestMachine(t)

	if res := m.Fire(r, "go"); res != Applied {
		t.Fatalf("Expected Applied, got %s", res)
	}
	if m.CurrentName() != "Busy" {
		t.Errorf("Expected Busy, got %s", m.CurrentName())
	}
	if got := strings.Join(r.log, ","); got != "enter_idle,exit_idle" {
		t.Errorf("Unexpected action order: %s", got)
	}

	// Every edge carrying "go" ends in Busy
	if res := m.Fire(r, "go"); res != NoOp {
		t.Errorf("Expected NoOp for same-state target, got %s", res)
	}
	if res := m.Fire(r, "nonsense"); res != Rejected {
		t.Errorf("Expected Rejected for unknown event, got %s", res)
	}
	if m.CurrentName() != "Busy" {
		t.Errorf("State changed by NoOp/Rejected: %s", m.CurrentName())
	}
}

func TestMachine_RejectedLeavesStateAlone(t *testing.T) {
	m, r := newTestMachine(t)
	before := len(r.log)

	// Every edge carrying "stop" ends in Idle, so firing it in Idle changes nothing
	if res := m.Fire(r, "stop"); res != NoOp {
		t.Errorf("Expected NoOp for stop in Idle, got %s", res)
	}
	// "finish" leads to Done, but only from Busy
	if res := m.Fire(r, "finish"); res != Rejected {
		t.Errorf("Expected Rejected for finish in Idle, got %s", res)
	}
	if m.CurrentName() != "Idle" {
		t.Errorf("Expected Idle, got %s", m.CurrentName())
	}
	if len(r.log) != before {
		t.Errorf("NoOp/Rejected event ran actions: %v", r.log)
	}

	m.Fire(r, "go")
	if res := m.Fire(r, "finish"); res != Applied {
		t.Errorf("Expected Applied for finish in Busy, got %s", res)
	}
	if res := m.Fire(r, "stop"); res != Rejected {
		t.Errorf("Expected Rejected for stop in Done, got %s", res)
	}
	if m.CurrentName() != "Done" {
		t.Errorf("Expected Done, got %s", m.CurrentName())
	}
}

func TestMachine_TransitionActions(t *testing.T) {
	const graph = `
initial = "A"

[states.A]
on_exit = [{ action = "Mark", args = { tag = "exit_a" } }]
transitions = [
    { trigger = "fresh", target = "B", actions = [{ action = "Mark", args = { tag = "edge" } }] },
    { trigger = "plain", target = "B" },
]

[states.B]
on_enter = [{ action = "Mark", args = { tag = "enter_b" } }]
transitions = [{ trigger = "back", target = "A" }]
`
	m := NewMachine[*recorder]()
	m.RegisterAction("Mark", func(r *recorder, args map[string]any) {
		tag, _ := args["tag"].(string)
		r.log = append(r.log, tag)
	})
	if err := m.LoadConfig([]byte(graph)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	r := &recorder{}
	if err := m.Init(r); err != nil {
		t.Fatal(err)
	}

	m.Fire(r, "fresh")
	if got := strings.Join(r.log, ","); got != "exit_a,edge,enter_b" {
		t.Errorf("Expected exit, edge, enter order, got %s", got)
	}

	m.Fire(r, "back")
	r.log = nil
	m.Fire(r, "plain")
	if got := strings.Join(r.log, ","); got != "exit_a,enter_b" {
		t.Errorf("Edge action ran on another edge: %s", got)
	}
}

func TestMachine_Guard(t *testing.T) {
	m, r := newTestMachine(t)

	if res := m.Fire(r, "locked"); res != Rejected {
		t.Errorf("Expected Rejected with guard false, got %s", res)
	}
	if m.CurrentName() != "Idle" {
		t.Errorf("Guarded transition fired with guard false")
	}

	r.allowed = true
	if res := m.Fire(r, "locked"); res != Applied {
		t.Errorf("Expected Applied with guard true, got %s", res)
	}
}

func TestMachine_Request(t *testing.T) {
	m, r := newTestMachine(t)
	busy, _ := m.GetStateID("Busy")
	idle, _ := m.GetStateID("Idle")

	if res := m.Request(r, idle); res != NoOp {
		t.Errorf("Expected NoOp requesting current state, got %s", res)
	}
	if res := m.Request(r, busy); res != Applied {
		t.Errorf("Expected Applied, got %s", res)
	}
	if !m.CanTransition(busy, idle) {
		t.Error("Expected Busy -> Idle edge")
	}
	if m.CanTransition(busy, busy) {
		t.Error("Unexpected Busy -> Busy edge")
	}
	if res := m.Request(r, StateID(99)); res != Rejected {
		t.Errorf("Expected Rejected for unknown state, got %s", res)
	}
}

func TestMachine_UpdateTracksTimeInState(t *testing.T) {
	m, r := newTestMachine(t)
	m.Fire(r, "go")

	m.Update(r, 10*time.Millisecond)
	m.Update(r, 15*time.Millisecond)
	if m.TimeInState() != 25*time.Millisecond {
		t.Errorf("Expected 25ms, got %v", m.TimeInState())
	}
	ticks := 0
	for _, tag := range r.log {
		if tag == "tick" {
			ticks++
		}
	}
	if ticks != 2 {
		t.Errorf("Expected 2 OnUpdate calls, got %d", ticks)
	}

	m.Fire(r, "stop")
	if m.TimeInState() != 0 {
		t.Errorf("Expected time reset on transition, got %v", m.TimeInState())
	}
}

func TestMachine_OnTransitionObserver(t *testing.T) {
	m, r := newTestMachine(t)
	var seen []string
	m.OnTransition = func(from, to StateID, event string) {
		seen = append(seen, m.StateName(from)+">"+m.StateName(to)+":"+event)
	}

	m.Fire(r, "go")
	m.Fire(r, "go")
	m.Fire(r, "stop")

	if got := strings.Join(seen, " "); got != "Idle>Busy:go Busy>Idle:stop" {
		t.Errorf("Unexpected observer log: %s", got)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", ``, "no states"},
		{"bad toml", `initial = `, "unmarshal"},
		{"unknown target", `initial = "A"
[states.A]
transitions = [{ trigger = "x", target = "B" }]`, "unknown target"},
		{"unknown guard", `initial = "A"
[states.A]
transitions = [{ trigger = "x", target = "A", guard = "Nope" }]`, "unknown guard"},
		{"unknown action", `initial = "A"
[states.A]
on_enter = [{ action = "Nope" }]`, "unknown action"},
		{"unknown edge action", `initial = "A"
[states.A]
transitions = [{ trigger = "x", target = "A", actions = [{ action = "Nope" }] }]`, "unknown action"},
		{"missing trigger", `initial = "A"
[states.A]
transitions = [{ target = "A" }]`, "no trigger"},
		{"missing initial", `initial = "Z"
[states.A]`, "initial state"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine[*recorder]()
			err := m.LoadConfig([]byte(tt.data))
			if err == nil {
				t.Fatalf("Expected error containing %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadConfig_DeterministicIDs(t *testing.T) {
	a, _ := newTestMachine(t)
	b, _ := newTestMachine(t)
	for _, name := range []string{"Idle", "Busy", "Done"} {
		ia, _ := a.GetStateID(name)
		ib, _ := b.GetStateID(name)
		if ia != ib {
			t.Errorf("State %s: IDs differ %d vs %d", name, ia, ib)
		}
	}
}

func TestLoadConfigAuto(t *testing.T) {
	m := NewMachine[*recorder]()
	m.RegisterAction("Mark", func(*recorder, map[string]any) {})
	m.RegisterGuard("Allowed", func(*recorder) bool { return true })

	if err := LoadConfigAuto(m, "", testGraph); err != nil {
		t.Fatalf("Embedded load failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fsm.toml")
	custom := "initial = \"Solo\"\n[states.Solo]\n"
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := LoadConfigAuto(m, path, testGraph); err != nil {
		t.Fatalf("Custom load failed: %v", err)
	}
	if _, ok := m.GetStateID("Solo"); !ok {
		t.Error("Expected custom graph to replace embedded")
	}
	if _, ok := m.GetStateID("Idle"); ok {
		t.Error("Expected previous graph cleared")
	}

	if err := LoadConfigAuto(m, filepath.Join(t.TempDir(), "missing.toml"), testGraph); err == nil {
		t.Error("Expected error for missing custom path")
	}
}
