package action

import (
	"context"
	"errors"
	"log/slog"

	"github.com/kingsmud/kings/internal/world"
)

const (
	attackDamage = 1

	// attackRetryUnits is how many scheduler time units pass between
	// swings of an ongoing fight.
	attackRetryUnits = 2
)

// Kill starts a reciprocal fight with a co-located target: bystanders
// are notified, then both directions of the fight take their first
// swing.
type Kill struct {
	Store      *world.Store
	Deliver    Deliverer
	Sched      Scheduler
	Attacker   world.Entity
	TargetName string
}

func (a *Kill) Execute(ctx context.Context) (string, error) {
	found := a.Store.Query(world.Filter{Id: a.TargetName, LocationId: a.Attacker.LocationId()})
	if len(found) == 0 {
		return narrate("fight_absent", map[string]any{"Target": a.TargetName}), nil
	}
	target := found[0]

	// The fight notice goes to everyone here but the initiator,
	// including the target.
	notice := narrate("fight_other", map[string]any{
		"Attacker": a.Attacker.Id(),
		"Target":   target.Id(),
	})
	for _, e := range a.Store.Query(world.Filter{LocationId: a.Attacker.LocationId()}) {
		if e.Id() == a.Attacker.Id() {
			continue
		}
		if err := a.Deliver.Deliver(e.Id(), notice); err != nil {
			slog.WarnContext(ctx, "delivering fight notice", "to", e.Id(), "error", err)
		}
	}

	swings := []*Attack{
		{Store: a.Store, Deliver: a.Deliver, Sched: a.Sched, AttackerId: a.Attacker.Id(), TargetId: target.Id()},
		{Store: a.Store, Deliver: a.Deliver, Sched: a.Sched, AttackerId: target.Id(), TargetId: a.Attacker.Id()},
	}
	for _, swing := range swings {
		if _, err := swing.Execute(ctx); err != nil {
			return "", err
		}
	}

	return narrate("fight_self", map[string]any{"Target": target.Id()}), nil
}

// Attack is one swing of a fight. Its narration goes to the target's
// mailbox, not the initiator, so Execute always returns empty text.
// Both participants are re-resolved against the store at execution time:
// a vanished or relocated party ends the fight with a "stopped" notice
// instead of faulting, which is what lets retry timers outlive their
// targets.
type Attack struct {
	Store      *world.Store
	Deliver    Deliverer
	Sched      Scheduler
	AttackerId string
	TargetId   string
}

func (a *Attack) Execute(ctx context.Context) (string, error) {
	// Co-location is checked inside the store so the read cannot tear
	// against a concurrent Move.
	if !a.Store.CoLocated(a.AttackerId, a.TargetId) {
		a.deliver(ctx, narrate("stopped", map[string]any{"Attacker": a.AttackerId}))
		return "", nil
	}

	remaining, err := a.Store.Damage(a.TargetId, attackDamage)
	if err != nil {
		// The target vanished between the check and the swing.
		if errors.Is(err, world.ErrNotFound) {
			a.deliver(ctx, narrate("stopped", map[string]any{"Attacker": a.AttackerId}))
			return "", nil
		}
		return "", err
	}

	if remaining < 0 {
		a.deliver(ctx, narrate("died", nil))
		a.bury(ctx)
		return "", nil
	}

	a.deliver(ctx, narrate("hit", map[string]any{
		"Attacker":  a.AttackerId,
		"Damage":    attackDamage,
		"Remaining": remaining,
	}))

	a.Sched.Schedule(attackRetryUnits, func(ctx context.Context) {
		if _, err := a.Execute(ctx); err != nil {
			slog.WarnContext(ctx, "combat retry", "attacker", a.AttackerId, "target", a.TargetId, "error", err)
		}
	})
	return "", nil
}

func (a *Attack) deliver(ctx context.Context, text string) {
	if err := a.Deliver.Deliver(a.TargetId, text); err != nil {
		slog.WarnContext(ctx, "delivering combat narration", "to", a.TargetId, "error", err)
	}
}

// bury applies the death policy: the dead entity leaves the world, and a
// dead player's session winds down. The removal is what makes the
// opposing retry timer resolve to "stopped attacking".
func (a *Attack) bury(ctx context.Context) {
	target, err := a.Store.Get(a.TargetId)
	if err != nil {
		// Already gone; nothing left to bury.
		return
	}
	if err := a.Store.Remove(a.TargetId); err != nil && !errors.Is(err, world.ErrNotFound) {
		slog.WarnContext(ctx, "removing dead entity", "entity", a.TargetId, "error", err)
	}
	if p, ok := target.(*world.Player); ok {
		p.Deactivate()
	}
}
