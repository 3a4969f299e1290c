package action

import (
	"context"

	"github.com/kingsmud/kings/internal/world"
)

// Exit ends the player's session from inside command interpretation;
// the session loop notices the inactive flag after writing the
// farewell.
type Exit struct {
	Player   *world.Player
	Farewell string
}

func (a *Exit) Execute(ctx context.Context) (string, error) {
	a.Player.Deactivate()
	return a.Farewell, nil
}
