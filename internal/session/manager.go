package session

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/kingsmud/kings/internal/action"
	"github.com/kingsmud/kings/internal/world"
)

// Bus is the mailbox transport surface a session subscribes through.
type Bus interface {
	Subscribe(subject string, handler func(data []byte)) (unsubscribe func(), err error)
}

// Manager builds a Session per accepted connection.
type Manager struct {
	store  *world.Store
	interp *action.Interpreter
	send   action.Deliverer
	bus    Bus
	start  string
}

func NewManager(store *world.Store, interp *action.Interpreter, send action.Deliverer, bus Bus, startLocation string) *Manager {
	return &Manager{
		store:  store,
		interp: interp,
		send:   send,
		bus:    bus,
		start:  startLocation,
	}
}

// RunSession drives one connection from username prompt to cleanup.
// The uuid only correlates log lines; the player id is the username.
func (m *Manager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	s := &Session{
		id:     uuid.NewString(),
		conn:   conn,
		store:  m.store,
		interp: m.interp,
		bus:    m.bus,
		send:   m.send,
		start:  m.start,
	}
	return s.Run(ctx)
}
