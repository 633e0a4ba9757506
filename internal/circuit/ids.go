package circuit

import (
	"fmt"

	"github.com/google/uuid"
)

// IDSource hands out component ids. Injected so tests can build reproducible
// graphs while interactive use gets collision-free random ids.
type IDSource interface {
	NewID() string
}

// UUIDSource generates random UUID ids.
type UUIDSource struct{}

func (UUIDSource) NewID() string { return uuid.NewString() }

// CounterSource generates c1, c2, ... deterministically.
type CounterSource struct {
	n int
}

func (s *CounterSource) NewID() string {
	s.n++
	return fmt.Sprintf("c%d", s.n)
}
