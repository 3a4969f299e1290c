package world

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/kingsmud/kings/internal/content"
)

// Definitions is the content collaborator the store pulls prototype
// records from.
type Definitions interface {
	Get(id string) *content.Definition
	GetAll() map[string]*content.Definition
}

// Store is the authoritative registry of live entities. Every lookup and
// mutation of the game world goes through it; there is no other path to
// an entity's current fields. Individual operations are atomic with
// respect to each other, but no multi-operation transaction exists: the
// world may change between any two calls.
type Store struct {
	mu       sync.RWMutex
	defs     Definitions
	entities map[string]Entity
	clones   uint64
}

func NewStore(defs Definitions) *Store {
	return &Store{
		defs:     defs,
		entities: make(map[string]Entity),
	}
}

// Get returns the entity stored under id or ErrNotFound.
func (s *Store) Get(id string) (Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	return e, nil
}

// Add registers an entity under its id. An existing entry under the same
// id is overwritten; only clone-id derivation guarantees freshness.
func (s *Store) Add(e Entity) error {
	if e.Id() == "" {
		return fmt.Errorf("entity id must not be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entities[e.Id()] = e
	return nil
}

// Remove deletes the entity stored under id or returns ErrNotFound.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entities[id]; !ok {
		return fmt.Errorf("%q: %w", id, ErrNotFound)
	}
	delete(s.entities, id)
	return nil
}

// Filter selects entities by exact field equality. An empty field
// matches anything.
type Filter struct {
	Id         string
	LocationId string
}

func (f Filter) matches(e Entity) bool {
	if f.Id != "" && e.Id() != f.Id {
		return false
	}
	if f.LocationId != "" && e.LocationId() != f.LocationId {
		return false
	}
	return true
}

// Query returns all entities matching the filter, in unspecified order.
func (s *Store) Query(f Filter) []Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var found []Entity
	for _, e := range s.entities {
		if f.matches(e) {
			found = append(found, e)
		}
	}
	return found
}

// CloneFrom copies the entity stored under protoId, or failing that its
// content definition, into a fresh instance. The clone gets the id
// "<protoId>:<n>" with n strictly increasing, so simultaneous clones of
// one prototype never collide.
func (s *Store) CloneFrom(protoId string) (Entity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proto, ok := s.entities[protoId]
	if !ok {
		loaded, err := s.loadPrototype(protoId)
		if err != nil {
			return nil, err
		}
		s.entities[protoId] = loaded
		proto = loaded
	}

	s.clones++
	c := proto.clone(fmt.Sprintf("%s:%d", protoId, s.clones))
	s.entities[c.Id()] = c
	return c, nil
}

func (s *Store) loadPrototype(protoId string) (Entity, error) {
	if s.defs == nil {
		return nil, fmt.Errorf("prototype %q: %w", protoId, ErrNotFound)
	}
	def := s.defs.Get(protoId)
	if def == nil {
		return nil, fmt.Errorf("prototype %q: %w", protoId, ErrNotFound)
	}
	return FromDefinition(protoId, def)
}

// Move relocates an entity after checking the destination exists. On
// ErrLocationNotFound the entity's location is left untouched; the check
// and the set happen under one lock.
func (s *Store) Move(id, destId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[id]
	if !ok {
		return fmt.Errorf("moving %q: %w", id, ErrNotFound)
	}
	if _, ok := s.entities[destId]; !ok {
		return fmt.Errorf("%q: %w", destId, ErrLocationNotFound)
	}

	e.setLocationId(destId)
	return nil
}

// CoLocated reports whether both entities exist and currently share a
// location. The check runs under the store lock; callers must not
// re-derive it from entity fields, which concurrent Move calls mutate.
func (s *Store) CoLocated(idA, idB string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, okA := s.entities[idA]
	b, okB := s.entities[idB]
	return okA && okB && a.LocationId() == b.LocationId()
}

// LocationOf resolves an entity's containing location. It returns nil
// when the entity is absent, has no location, or holds a stale
// reference; the stale case is logged rather than failed since lookups
// must tolerate it.
func (s *Store) LocationOf(id string) Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[id]
	if !ok || e.LocationId() == "" {
		return nil
	}

	loc, ok := s.entities[e.LocationId()]
	if !ok {
		slog.Warn("stale location reference", "entity", id, "location", e.LocationId())
		return nil
	}
	return loc
}

// Damage applies n damage to the entity under id and returns its
// remaining hit points. Mutation happens under the store lock so
// concurrent attackers never tear a read.
func (s *Store) Damage(id string, n int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entities[id]
	if !ok {
		return 0, fmt.Errorf("damaging %q: %w", id, ErrNotFound)
	}
	d, ok := e.(Damageable)
	if !ok {
		return 0, fmt.Errorf("entity %q cannot take damage", id)
	}
	return d.ApplyDamage(n), nil
}

// Dump renders a sorted listing of the store for the ls debug command.
func (s *Store) Dump() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.entities))
	for id := range s.entities {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		e := s.entities[id]
		fmt.Fprintf(&b, "%s @ %s\n", id, e.LocationId())
	}
	return strings.TrimRight(b.String(), "\n")
}

// Populate instantiates every content definition and then clones each
// location's NPC population into place. Locations are created first so
// initial location references resolve; a dangling reference in content
// is a load error, not something discovered later.
func (s *Store) Populate() error {
	if s.defs == nil {
		return fmt.Errorf("no content definitions configured")
	}

	all := s.defs.GetAll()
	for id, def := range all {
		e, err := FromDefinition(id, def)
		if err != nil {
			return err
		}
		if err := s.Add(e); err != nil {
			return fmt.Errorf("adding %q: %w", id, err)
		}
	}

	for id, def := range all {
		for _, protoId := range def.Npcs {
			c, err := s.CloneFrom(protoId)
			if err != nil {
				return fmt.Errorf("populating %q: %w", id, err)
			}
			if err := s.Move(c.Id(), id); err != nil {
				return fmt.Errorf("placing %q in %q: %w", c.Id(), id, err)
			}
		}
	}

	return s.verifyLocations()
}

func (s *Store) verifyLocations() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, e := range s.entities {
		if loc := e.LocationId(); loc != "" {
			if _, ok := s.entities[loc]; !ok {
				return fmt.Errorf("entity %q placed in unknown location %q", id, loc)
			}
		}
	}
	return nil
}
