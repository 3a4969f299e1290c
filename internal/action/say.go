package action

import (
	"context"
	"log/slog"

	"github.com/kingsmud/kings/internal/world"
)

// Say fans a message out to everyone co-located with the speaker at
// dispatch time. Late arrivals hear nothing; delivery is best-effort.
type Say struct {
	Store   *world.Store
	Deliver Deliverer
	Speaker world.Entity
	Message string
}

func (a *Say) Execute(ctx context.Context) (string, error) {
	heard := narrate("say_other", map[string]any{
		"Speaker": a.Speaker.Id(),
		"Message": a.Message,
	})

	for _, e := range a.Store.Query(world.Filter{LocationId: a.Speaker.LocationId()}) {
		if e.Id() == a.Speaker.Id() {
			continue
		}
		if err := a.Deliver.Deliver(e.Id(), heard); err != nil {
			slog.WarnContext(ctx, "delivering say", "to", e.Id(), "error", err)
		}
	}

	return narrate("say_self", map[string]any{"Message": a.Message}), nil
}
