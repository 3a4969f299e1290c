package action

import (
	"context"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestInterpret(t *testing.T) {
	s, p := newTestWorld(t)
	deliver := newMockDeliverer()
	sched := &mockScheduler{}
	i := NewInterpreter(s, deliver, sched)

	tests := map[string]struct {
		line  string
		check func(t *testing.T, a Action)
	}{
		"ls": {
			line: "ls",
			check: func(t *testing.T, a Action) {
				m, ok := a.(*Message)
				if !ok {
					t.Fatalf("expected *Message, got %T", a)
				}
				if !strings.Contains(m.Text, "alice @ town_square") {
					t.Errorf("expected a store dump, got %q", m.Text)
				}
			},
		},
		"look with no target defaults to here": {
			line: "look",
			check: func(t *testing.T, a Action) {
				l, ok := a.(*Look)
				if !ok {
					t.Fatalf("expected *Look, got %T", a)
				}
				testutil.AssertEqual(t, "target", l.TargetId, "town_square")
			},
		},
		"look with target": {
			line: "look dog",
			check: func(t *testing.T, a Action) {
				l, ok := a.(*Look)
				if !ok {
					t.Fatalf("expected *Look, got %T", a)
				}
				testutil.AssertEqual(t, "target", l.TargetId, "dog")
			},
		},
		"exit": {
			line: "exit",
			check: func(t *testing.T, a Action) {
				e, ok := a.(*Exit)
				if !ok {
					t.Fatalf("expected *Exit, got %T", a)
				}
				testutil.AssertEqual(t, "farewell", e.Farewell, "Goodbye")
			},
		},
		"say keeps the whole remainder": {
			line: "say hello there world",
			check: func(t *testing.T, a Action) {
				sy, ok := a.(*Say)
				if !ok {
					t.Fatalf("expected *Say, got %T", a)
				}
				testutil.AssertEqual(t, "message", sy.Message, "hello there world")
			},
		},
		"kill": {
			line: "kill dog",
			check: func(t *testing.T, a Action) {
				k, ok := a.(*Kill)
				if !ok {
					t.Fatalf("expected *Kill, got %T", a)
				}
				testutil.AssertEqual(t, "target", k.TargetName, "dog")
			},
		},
		"exit name moves": {
			line: "north",
			check: func(t *testing.T, a Action) {
				m, ok := a.(*Move)
				if !ok {
					t.Fatalf("expected *Move, got %T", a)
				}
				testutil.AssertEqual(t, "destination", m.DestinationId, "forest")
			},
		},
		"unknown verb": {
			line: "dance",
			check: func(t *testing.T, a Action) {
				m, ok := a.(*Message)
				if !ok {
					t.Fatalf("expected *Message, got %T", a)
				}
				testutil.AssertEqual(t, "text", m.Text, `I don't know what "dance" means`)
			},
		},
		"verbs are case sensitive": {
			line: "Look",
			check: func(t *testing.T, a Action) {
				m, ok := a.(*Message)
				if !ok {
					t.Fatalf("expected *Message, got %T", a)
				}
				testutil.AssertEqual(t, "text", m.Text, `I don't know what "Look" means`)
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			tc.check(t, i.Interpret(p, tc.line))
		})
	}
}

func TestInterpretExitNamesFollowTheMover(t *testing.T) {
	s, p := newTestWorld(t)
	i := NewInterpreter(s, newMockDeliverer(), &mockScheduler{})

	// north is not an exit of the forest
	if err := s.Move("alice", "forest"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	a := i.Interpret(p, "north")
	if _, ok := a.(*Message); !ok {
		t.Fatalf("expected *Message, got %T", a)
	}

	m := i.Interpret(p, "south").(*Move)
	testutil.AssertEqual(t, "destination", m.DestinationId, "town_square")

	out, err := m.Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "The town square.") {
		t.Errorf("expected a look at the destination, got %q", out)
	}
}
