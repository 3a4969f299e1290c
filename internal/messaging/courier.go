package messaging

import (
	"github.com/kingsmud/kings/internal/world"
)

// Publisher is the bus surface the Courier needs; NatsServer satisfies
// it.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Courier implements the action engine's Deliverer against per-entity
// mailbox subjects. Delivering to an entity without a mailbox, or one
// that has already left the store, is a silent no-op.
type Courier struct {
	pub   Publisher
	store *world.Store
}

func NewCourier(pub Publisher, store *world.Store) *Courier {
	return &Courier{
		pub:   pub,
		store: store,
	}
}

func (c *Courier) Deliver(entityId string, text string) error {
	e, err := c.store.Get(entityId)
	if err != nil {
		return nil
	}

	m, ok := e.(world.Mailboxed)
	if !ok {
		return nil
	}

	return c.pub.Publish(m.MailboxSubject(), []byte(text))
}
