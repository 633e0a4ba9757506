// Package circuit defines the component/wire graph that the solver operates
// on: typed components with two terminals each, zero-resistance wires joining
// terminals, and the mutable electrical state written back after every solve.
//
// The graph is plain data. Editing (adding components, wiring, repairing) is
// done through [Graph] methods by whatever layer owns user interaction; the
// solver only reads the topology and writes [State]. Nothing here is safe for
// concurrent use: callers serialize edits against solves.
package circuit
