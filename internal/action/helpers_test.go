package action

import (
	"context"
	"testing"

	"github.com/kingsmud/kings/internal/world"
)

// mockDeliverer records every mailbox delivery by recipient id.
type mockDeliverer struct {
	sent map[string][]string
}

func newMockDeliverer() *mockDeliverer {
	return &mockDeliverer{sent: map[string][]string{}}
}

func (m *mockDeliverer) Deliver(entityId string, text string) error {
	m.sent[entityId] = append(m.sent[entityId], text)
	return nil
}

func (m *mockDeliverer) last(entityId string) string {
	msgs := m.sent[entityId]
	if len(msgs) == 0 {
		return ""
	}
	return msgs[len(msgs)-1]
}

type scheduledTask struct {
	units int
	task  func(context.Context)
}

// mockScheduler captures tasks so tests can fire retries by hand.
type mockScheduler struct {
	tasks []scheduledTask
}

func (m *mockScheduler) Schedule(units int, task func(context.Context)) {
	m.tasks = append(m.tasks, scheduledTask{units: units, task: task})
}

// runNext pops and runs the oldest pending task.
func (m *mockScheduler) runNext(ctx context.Context, t *testing.T) {
	t.Helper()
	if len(m.tasks) == 0 {
		t.Fatal("no scheduled task to run")
	}
	next := m.tasks[0]
	m.tasks = m.tasks[1:]
	next.task(ctx)
}

// newTestWorld builds a two-location world with alice and a dog in the
// town square.
func newTestWorld(t *testing.T) (*world.Store, *world.Player) {
	t.Helper()
	s := world.NewStore(nil)

	fixtures := []world.Entity{
		world.NewLocation("town_square", "the town square", "The town square.", map[string]string{"north": "forest"}),
		world.NewLocation("forest", "the forest", "A dark forest.", map[string]string{"south": "town_square"}),
		world.NewNpc("dog", "dog", "A scruffy dog."),
	}
	for _, e := range fixtures {
		if err := s.Add(e); err != nil {
			t.Fatalf("adding %q: %v", e.Id(), err)
		}
	}
	if err := s.Move("dog", "town_square"); err != nil {
		t.Fatalf("placing dog: %v", err)
	}

	p := world.NewPlayer("alice", "town_square")
	if err := s.Add(p); err != nil {
		t.Fatalf("adding alice: %v", err)
	}
	return s, p
}
