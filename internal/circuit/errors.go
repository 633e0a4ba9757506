package circuit

import "errors"

var (
	// ErrReversedPolarity indicates a battery constructed with a negative
	// source voltage. Terminal 0 is the negative pole and terminal 1 the
	// positive pole; flipping the sign instead of the wiring is rejected.
	ErrReversedPolarity = errors.New("circuit: negative source voltage (terminal 0 is the negative pole; rewire instead of negating)")

	// ErrDuplicateID indicates a component id already present in the graph.
	ErrDuplicateID = errors.New("circuit: duplicate component id")

	// ErrUnknownComponent indicates a component id not present in the graph.
	ErrUnknownComponent = errors.New("circuit: unknown component id")

	// ErrBadTerminal indicates a terminal index other than 0 or 1.
	ErrBadTerminal = errors.New("circuit: terminal index must be 0 or 1")

	// ErrUnknownKind indicates an unrecognized component type name.
	ErrUnknownKind = errors.New("circuit: unknown component kind")
)
