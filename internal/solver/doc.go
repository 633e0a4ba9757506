// Package solver recomputes the electrical state of a circuit graph.
//
// One call to [Solve] runs the full pipeline: terminals joined by wires are
// merged into nodes with a union-find pass, one node is picked as ground and
// the rest get dense indices, every component stamps its modified-nodal-
// analysis contribution into a dense linear system, the system is solved by
// Gaussian elimination with partial pivoting, and the solution is mapped
// back onto per-component current, voltage drop and power, including the
// irreversible overload-to-burnt transition.
//
// Degenerate inputs are policy outcomes, not errors: an empty graph is a
// no-op, a graph with a single electrical node zeroes all state, and a
// structurally singular pivot column leaves its unknown at zero. Solve never
// fails.
package solver
