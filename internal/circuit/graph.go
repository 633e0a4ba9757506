package circuit

import "fmt"

// Terminal identifies one end of a wire: a component id plus the local
// terminal index (0 or 1).
type Terminal struct {
	ComponentID string
	Index       int
}

// Wire is an undirected zero-resistance edge between two terminals. It does
// not own the components it refers to.
type Wire struct {
	A, B Terminal
}

// Graph owns an ordered list of components and the wires joining them.
// Component order is stable (insertion order); the solver relies on it for
// ground selection and node enumeration.
type Graph struct {
	ids        IDSource
	components []*Component
	byID       map[string]*Component
	wires      []Wire
}

func New(ids IDSource) *Graph {
	if ids == nil {
		ids = UUIDSource{}
	}
	return &Graph{
		ids:  ids,
		byID: make(map[string]*Component),
	}
}

// NewID hands out a fresh component id from the injected source.
func (g *Graph) NewID() string { return g.ids.NewID() }

// Add inserts a component at the end of the stored order.
func (g *Graph) Add(c *Component) error {
	if _, ok := g.byID[c.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateID, c.ID)
	}
	g.components = append(g.components, c)
	g.byID[c.ID] = c
	return nil
}

// Remove deletes a component and every wire attached to it.
func (g *Graph) Remove(id string) error {
	if _, ok := g.byID[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, id)
	}
	delete(g.byID, id)
	for i, c := range g.components {
		if c.ID == id {
			g.components = append(g.components[:i], g.components[i+1:]...)
			break
		}
	}
	kept := g.wires[:0]
	for _, w := range g.wires {
		if w.A.ComponentID != id && w.B.ComponentID != id {
			kept = append(kept, w)
		}
	}
	g.wires = kept
	return nil
}

// Connect adds a wire between two terminals.
func (g *Graph) Connect(a, b Terminal) error {
	for _, t := range [2]Terminal{a, b} {
		if t.Index != 0 && t.Index != 1 {
			return fmt.Errorf("%w: %d", ErrBadTerminal, t.Index)
		}
		if _, ok := g.byID[t.ComponentID]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownComponent, t.ComponentID)
		}
	}
	g.wires = append(g.wires, Wire{A: a, B: b})
	return nil
}

// Disconnect removes all wires between the two terminals, in either
// orientation. Returns the number removed.
func (g *Graph) Disconnect(a, b Terminal) int {
	removed := 0
	kept := g.wires[:0]
	for _, w := range g.wires {
		if (w.A == a && w.B == b) || (w.A == b && w.B == a) {
			removed++
			continue
		}
		kept = append(kept, w)
	}
	g.wires = kept
	return removed
}

// Component looks a component up by id.
func (g *Graph) Component(id string) (*Component, bool) {
	c, ok := g.byID[id]
	return c, ok
}

// Components returns the components in stored order. Callers must not
// reorder the slice.
func (g *Graph) Components() []*Component { return g.components }

// Wires returns the wire list. Callers must not mutate it.
func (g *Graph) Wires() []Wire { return g.wires }

// Repair clears a component's burnt flag and zeroes its power. This is the
// only path from BURNT back to HEALTHY; the solver never unburns anything.
func (g *Graph) Repair(id string) error {
	c, ok := g.byID[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, id)
	}
	c.State.Burnt = false
	c.State.Power = 0
	return nil
}
