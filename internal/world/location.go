package world

// Location is a place entities can occupy. Its contents are derived, not
// stored: they are whatever the store holds with a matching location id.
type Location struct {
	Object
	exits map[string]string
}

func NewLocation(id, shortDesc, longDesc string, exits map[string]string) *Location {
	if exits == nil {
		exits = map[string]string{}
	}
	return &Location{
		Object: Object{id: id, shortDesc: shortDesc, longDesc: longDesc},
		exits:  exits,
	}
}

// Exits satisfies Exitable. The map is fixed at creation; callers must
// not mutate it.
func (l *Location) Exits() map[string]string {
	return l.exits
}

func (l *Location) clone(newId string) Entity {
	c := *l
	c.id = newId
	c.exits = make(map[string]string, len(l.exits))
	for dir, dest := range l.exits {
		c.exits[dir] = dest
	}
	return &c
}
