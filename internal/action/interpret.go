package action

import (
	"strings"

	"github.com/kingsmud/kings/internal/world"
)

// Interpreter maps one line of player input to an Action. Dispatch is
// pure: it only selects and constructs; execution is the caller's
// separate step.
type Interpreter struct {
	store   *world.Store
	deliver Deliverer
	sched   Scheduler
}

func NewInterpreter(store *world.Store, deliver Deliverer, sched Scheduler) *Interpreter {
	return &Interpreter{
		store:   store,
		deliver: deliver,
		sched:   sched,
	}
}

// Interpret dispatches on the first whitespace-delimited token,
// case-sensitively. A token naming an exit of the player's current
// location becomes a Move; anything else falls through to an unknown
// command narration.
func (i *Interpreter) Interpret(p *world.Player, line string) Action {
	verb, rest, _ := strings.Cut(line, " ")

	switch verb {
	case "ls":
		return &Message{Text: i.store.Dump()}

	case "look":
		targetId := rest
		if targetId == "" {
			targetId = p.LocationId()
		}
		return &Look{Store: i.store, Observer: p, TargetId: targetId}

	case "exit":
		return &Exit{Player: p, Farewell: "Goodbye"}

	case "say":
		return &Say{Store: i.store, Deliver: i.deliver, Speaker: p, Message: rest}

	case "kill":
		return &Kill{Store: i.store, Deliver: i.deliver, Sched: i.sched, Attacker: p, TargetName: rest}
	}

	if loc, ok := i.store.LocationOf(p.Id()).(world.Exitable); ok {
		if dest, ok := loc.Exits()[verb]; ok {
			return &Move{Store: i.store, Mover: p, DestinationId: dest}
		}
	}

	return &Message{Text: narrate("unknown", map[string]any{"Verb": verb})}
}
