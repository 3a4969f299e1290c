package world

import (
	"fmt"

	"github.com/kingsmud/kings/internal/content"
)

// Entity is anything with an identity participating in the world graph.
// Variants advertise extra behavior through the capability interfaces
// below; consumers test for a capability and degrade gracefully when it
// is absent.
type Entity interface {
	Id() string
	ShortDesc() string
	LongDesc() string
	LocationId() string

	// setLocationId is only called by the Store, which validates the
	// target first.
	setLocationId(id string)

	// clone returns an independently mutable value copy under a new id.
	clone(newId string) Entity
}

// Exitable is the capability of containing exits to other locations.
type Exitable interface {
	// Exits maps direction names to destination ids.
	Exits() map[string]string
}

// Mailboxed is the capability of receiving asynchronous narration text.
type Mailboxed interface {
	// MailboxSubject names the bus subject the owning session drains.
	MailboxSubject() string
}

// Damageable is the capability of taking part in combat.
type Damageable interface {
	HitPoints() int

	// ApplyDamage reduces hit points by n and returns the remainder.
	// Callers go through Store.Damage so mutations are serialized.
	ApplyDamage(n int) int
}

// Object is the identity core embedded by every entity variant.
type Object struct {
	id         string
	shortDesc  string
	longDesc   string
	locationId string
}

func (o *Object) Id() string             { return o.id }
func (o *Object) ShortDesc() string      { return o.shortDesc }
func (o *Object) LongDesc() string       { return o.longDesc }
func (o *Object) LocationId() string     { return o.locationId }
func (o *Object) setLocationId(id string) { o.locationId = id }

// FromDefinition constructs the entity variant a content definition
// describes. NPC populations of locations are not instantiated here;
// that is the Store's job at populate time.
func FromDefinition(id string, def *content.Definition) (Entity, error) {
	switch def.Type {
	case content.TypeLocation:
		return NewLocation(id, def.ShortDesc, def.LongDesc, def.Exits), nil
	case content.TypeNpc:
		n := NewNpc(id, def.ShortDesc, def.LongDesc)
		n.locationId = def.Location
		return n, nil
	case content.TypePlayer:
		return NewPlayer(id, def.Location), nil
	default:
		return nil, fmt.Errorf("definition %q: unknown type %q", id, def.Type)
	}
}
