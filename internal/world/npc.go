package world

const npcHitPoints = 5

// Npc is a computer-controlled combatant. Prototypes live in the store
// under their definition id; populated instances are clones.
type Npc struct {
	Object
	hp int
}

func NewNpc(id, shortDesc, longDesc string) *Npc {
	return &Npc{
		Object: Object{id: id, shortDesc: shortDesc, longDesc: longDesc},
		hp:     npcHitPoints,
	}
}

func (n *Npc) HitPoints() int { return n.hp }

func (n *Npc) ApplyDamage(dmg int) int {
	n.hp -= dmg
	return n.hp
}

func (n *Npc) clone(newId string) Entity {
	c := *n
	c.id = newId
	return &c
}
