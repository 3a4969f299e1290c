package action

import (
	"context"
	"sort"
	"strings"

	"github.com/kingsmud/kings/internal/world"
)

// Look resolves a target and describes it from the observer's vantage:
// the observer's own location directly, anything else by co-located
// query. An unresolvable target narrates instead of erroring.
type Look struct {
	Store    *world.Store
	Observer world.Entity
	TargetId string
}

func (a *Look) Execute(ctx context.Context) (string, error) {
	target, ok := a.resolve()
	if !ok {
		return narrate("nothing_here", map[string]any{"Target": a.TargetId}), nil
	}

	lines := []string{target.LongDesc()}
	if ex, ok := target.(world.Exitable); ok {
		lines = append(lines, exitsLine(ex.Exits()))
		lines = append(lines, a.occupants()...)
	}
	return strings.Join(lines, "\n"), nil
}

func (a *Look) resolve() (world.Entity, bool) {
	if a.TargetId == a.Observer.LocationId() {
		e, err := a.Store.Get(a.TargetId)
		return e, err == nil
	}

	found := a.Store.Query(world.Filter{Id: a.TargetId, LocationId: a.Observer.LocationId()})
	if len(found) == 0 {
		return nil, false
	}
	return found[0], true
}

// occupants lists the short descriptions of everything sharing the
// observer's location, except the observer.
func (a *Look) occupants() []string {
	var descs []string
	for _, e := range a.Store.Query(world.Filter{LocationId: a.Observer.LocationId()}) {
		if e.Id() != a.Observer.Id() {
			descs = append(descs, e.ShortDesc())
		}
	}
	sort.Strings(descs)
	return descs
}

func exitsLine(exits map[string]string) string {
	if len(exits) == 0 {
		return "There are no obvious exists" // sic
	}

	dirs := make([]string, 0, len(exits))
	for dir := range exits {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	return "Exits: " + strings.Join(dirs, ", ")
}
