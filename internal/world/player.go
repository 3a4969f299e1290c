package world

import "sync/atomic"

const playerHitPoints = 20

// Player is a connected user's entity. It is created on connection
// accept and removed from the store when the session closes.
type Player struct {
	Object
	hp     int
	active atomic.Bool
}

func NewPlayer(id, locationId string) *Player {
	p := &Player{
		Object: Object{id: id, locationId: locationId},
		hp:     playerHitPoints,
	}
	p.active.Store(true)
	return p
}

// ShortDesc defaults to the player's id; players have no authored
// description.
func (p *Player) ShortDesc() string {
	return p.id
}

// MailboxSubject satisfies Mailboxed.
func (p *Player) MailboxSubject() string {
	return "player-" + p.id
}

func (p *Player) HitPoints() int { return p.hp }

func (p *Player) ApplyDamage(n int) int {
	p.hp -= n
	return p.hp
}

// Active reports whether the owning session should keep running. The
// flag is atomic because combat retries fire from the scheduler
// goroutine while the session goroutine polls it.
func (p *Player) Active() bool { return p.active.Load() }

func (p *Player) Deactivate() { p.active.Store(false) }

func (p *Player) clone(newId string) Entity {
	c := &Player{
		Object: Object{id: newId, shortDesc: p.shortDesc, longDesc: p.longDesc, locationId: p.locationId},
		hp:     p.hp,
	}
	c.active.Store(p.active.Load())
	return c
}
