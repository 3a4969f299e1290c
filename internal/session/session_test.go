package session

import (
	"context"
	"errors"
	"net"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/kingsmud/kings/internal/action"
	"github.com/kingsmud/kings/internal/messaging"
	"github.com/kingsmud/kings/internal/world"
)

// testBus is an in-process pub/sub fabric standing in for the embedded
// message server.
type testBus struct {
	mu   sync.Mutex
	subs map[string][]func([]byte)
}

func newTestBus() *testBus {
	return &testBus{subs: map[string][]func([]byte){}}
}

func (b *testBus) Subscribe(subject string, handler func(data []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[subject] = append(b.subs[subject], handler)
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, subject)
	}, nil
}

func (b *testBus) Publish(subject string, data []byte) error {
	b.mu.Lock()
	handlers := append(([]func([]byte))(nil), b.subs[subject]...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(data)
	}
	return nil
}

type noopScheduler struct{}

func (noopScheduler) Schedule(units int, task func(context.Context)) {}

func newTestManager(t *testing.T) (*Manager, *world.Store, *testBus) {
	t.Helper()
	store := world.NewStore(nil)
	fixtures := []world.Entity{
		world.NewLocation("town_square", "the town square", "The town square.", map[string]string{"north": "forest"}),
		world.NewLocation("forest", "the forest", "A dark forest.", map[string]string{"south": "town_square"}),
	}
	for _, e := range fixtures {
		if err := store.Add(e); err != nil {
			t.Fatalf("adding %q: %v", e.Id(), err)
		}
	}

	bus := newTestBus()
	courier := messaging.NewCourier(bus, store)
	interp := action.NewInterpreter(store, courier, noopScheduler{})
	return NewManager(store, interp, courier, bus, "town_square"), store, bus
}

// client drives one side of a piped connection with read deadlines.
type client struct {
	t    *testing.T
	conn net.Conn
}

func (c *client) readUntil(marker string) string {
	c.t.Helper()
	c.conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var got strings.Builder
	buf := make([]byte, 256)
	for !strings.Contains(got.String(), marker) {
		n, err := c.conn.Read(buf)
		got.Write(buf[:n])
		if err != nil {
			c.t.Fatalf("reading for %q: got %q, error: %v", marker, got.String(), err)
		}
	}
	return got.String()
}

func (c *client) writeLine(line string) {
	c.t.Helper()
	if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
		c.t.Fatalf("writing %q: %v", line, err)
	}
}

func runSession(t *testing.T, m *Manager) (*client, chan error) {
	t.Helper()
	server, clientConn := net.Pipe()
	done := make(chan error, 1)
	go func() {
		done <- m.RunSession(context.Background(), server)
		server.Close()
	}()
	t.Cleanup(func() { clientConn.Close() })
	return &client{t: t, conn: clientConn}, done
}

func waitDone(t *testing.T, done chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("session did not end")
		return nil
	}
}

func TestSessionLoginShowsSurroundings(t *testing.T) {
	m, store, _ := newTestManager(t)
	c, done := runSession(t, m)

	c.readUntil("User: ")
	c.writeLine("alice")

	// The surroundings arrive without any command being typed.
	out := c.readUntil("% ")
	if !strings.Contains(out, "The town square.") {
		t.Errorf("expected the starting location description, got %q", out)
	}
	if !strings.Contains(out, "Exits: north") {
		t.Errorf("expected the exits line, got %q", out)
	}

	if _, err := store.Get("alice"); err != nil {
		t.Errorf("expected the player in the store: %v", err)
	}

	c.writeLine("exit")
	out = c.readUntil("% ")
	if !strings.Contains(out, "Goodbye") {
		t.Errorf("expected a farewell, got %q", out)
	}

	if err := waitDone(t, done); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := store.Get("alice"); !errors.Is(err, world.ErrNotFound) {
		t.Errorf("expected the player removed on exit, got %v", err)
	}
}

func TestSessionCommandRoundTrip(t *testing.T) {
	m, _, _ := newTestManager(t)
	c, done := runSession(t, m)

	c.readUntil("User: ")
	c.writeLine("alice")
	c.readUntil("% ")

	c.writeLine("say hello")
	out := c.readUntil("% ")
	if !strings.Contains(out, `You say: "hello"`) {
		t.Errorf("expected the speaker echo, got %q", out)
	}

	c.writeLine("north")
	out = c.readUntil("% ")
	if !strings.Contains(out, "A dark forest.") {
		t.Errorf("expected the destination description, got %q", out)
	}

	c.writeLine("exit")
	c.readUntil("Goodbye")
	waitDone(t, done)
}

func TestSessionLoginWithPipelinedCommand(t *testing.T) {
	m, _, _ := newTestManager(t)
	c, done := runSession(t, m)

	c.readUntil("User: ")

	// The username and a command arrive in one segment; the command
	// must survive the login read and execute afterwards.
	if _, err := c.conn.Write([]byte("alice\nlook\n")); err != nil {
		t.Fatalf("writing input: %v", err)
	}

	// One block for the login look, one for the explicit look.
	out := c.readUntil("% ") + c.readUntil("% ")
	if got := strings.Count(out, "The town square."); got != 2 {
		t.Errorf("expected two location descriptions, got %d in %q", got, out)
	}

	c.writeLine("exit")
	c.readUntil("Goodbye")
	waitDone(t, done)
}

func TestSessionMailboxDelivery(t *testing.T) {
	m, _, bus := newTestManager(t)
	c, done := runSession(t, m)

	c.readUntil("User: ")
	c.writeLine("alice")
	c.readUntil("% ")

	// Narration published to the player's subject shows up on the wire.
	if err := bus.Publish("player-alice", []byte(`bob says: "hi"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := c.readUntil("% ")
	if !strings.Contains(out, `bob says: "hi"`) {
		t.Errorf("expected the delivered narration, got %q", out)
	}

	c.writeLine("exit")
	c.readUntil("Goodbye")
	waitDone(t, done)
}

func TestSessionExitWithPipelinedInput(t *testing.T) {
	before := runtime.NumGoroutine()

	m, _, _ := newTestManager(t)
	c, done := runSession(t, m)

	c.readUntil("User: ")
	c.writeLine("alice")
	c.readUntil("% ")

	// Both lines arrive in one segment; the session ends on the first
	// and must not strand its reader goroutine on the second.
	if _, err := c.conn.Write([]byte("exit\nlook\n")); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	c.readUntil("Goodbye")
	waitDone(t, done)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && runtime.NumGoroutine() > before {
		time.Sleep(10 * time.Millisecond)
	}
	if got := runtime.NumGoroutine(); got > before {
		t.Errorf("goroutines leaked: before=%d after=%d", before, got)
	}
}

func TestSessionDisconnectCleansUp(t *testing.T) {
	m, store, _ := newTestManager(t)
	c, done := runSession(t, m)

	c.readUntil("User: ")
	c.writeLine("alice")
	c.readUntil("% ")

	c.conn.Close()
	waitDone(t, done)

	if _, err := store.Get("alice"); !errors.Is(err, world.ErrNotFound) {
		t.Errorf("expected the player removed on disconnect, got %v", err)
	}
}

func TestSessionRejectsBadUsername(t *testing.T) {
	m, _, _ := newTestManager(t)
	c, done := runSession(t, m)

	c.readUntil("User: ")
	c.writeLine("not a name")
	c.readUntil("User: ")
	c.writeLine("alice")
	c.readUntil("The town square.")

	c.writeLine("exit")
	c.readUntil("Goodbye")
	waitDone(t, done)
}
