package action

import (
	"context"
	"errors"

	"github.com/kingsmud/kings/internal/world"
)

// Move walks the mover through an exit, then looks around for them. A
// missing destination narrates an apology and leaves the mover where
// they were.
type Move struct {
	Store         *world.Store
	Mover         world.Entity
	DestinationId string
}

func (a *Move) Execute(ctx context.Context) (string, error) {
	err := a.Store.Move(a.Mover.Id(), a.DestinationId)
	if errors.Is(err, world.ErrLocationNotFound) {
		return narrate("move_failed", map[string]any{"Destination": a.DestinationId}), nil
	}
	if err != nil {
		return "", err
	}

	look := &Look{Store: a.Store, Observer: a.Mover, TargetId: a.DestinationId}
	return look.Execute(ctx)
}
