package action

import "context"

// An Action is a value capturing who initiated a command and what effect
// it intends, decoupled from both input parsing and output delivery.
// Execute performs the mutation (if any) and returns the narration for
// the initiator. Effects on third parties never touch another session's
// connection; they go through the Deliverer into that entity's mailbox.
type Action interface {
	Execute(ctx context.Context) (string, error)
}

// Deliverer enqueues narration text into an entity's mailbox. Delivery
// is one-way and best-effort: entities without a mailbox drop the text.
type Deliverer interface {
	Deliver(entityId string, text string) error
}

// Scheduler runs a task after a delay measured in whole game time units.
type Scheduler interface {
	Schedule(units int, task func(context.Context))
}

// Message wraps an already-computed narration with no further effect.
type Message struct {
	Text string
}

func (a *Message) Execute(ctx context.Context) (string, error) {
	return a.Text, nil
}
